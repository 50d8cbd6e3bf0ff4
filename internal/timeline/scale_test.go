package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/model"
	"planboard/internal/timeline"
	"planboard/internal/viewstate"
)

func date(month time.Month, day int) model.Date {
	return model.NewDate(2025, month, day)
}

func TestGenerate_Week(t *testing.T) {
	w, err := timeline.Generate(viewstate.ScaleWeek, date(time.January, 8), 0)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", w.Start.String())
	assert.Equal(t, "2025-01-13", w.End.String())
	assert.Equal(t, 7, w.TotalDays)
	assert.Equal(t, "Jan 6 - Jan 12, 2025", w.Label)
	require.Len(t, w.Units, 1)
	require.Len(t, w.Units[0].Subdivisions, 7)
	assert.Equal(t, "Mon 6", w.Units[0].Subdivisions[0].Label)
	assert.Equal(t, "Sun 12", w.Units[0].Subdivisions[6].Label)

	prev, err := timeline.Generate(viewstate.ScaleWeek, date(time.January, 8), -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", prev.Start.String())
	assert.Nil(t, prev.TodayPct)
}

func TestGenerate_MonthSplitsIntoWeeks(t *testing.T) {
	w, err := timeline.Generate(viewstate.ScaleMonth, date(time.January, 6), 0)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", w.Start.String())
	assert.Equal(t, "2025-02-01", w.End.String())
	assert.Equal(t, 31, w.TotalDays)
	assert.Equal(t, "January 2025", w.Label)

	var labels []string
	for _, s := range w.Units[0].Subdivisions {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"Jan 1", "Jan 6", "Jan 13", "Jan 20", "Jan 27"}, labels)

	require.NotNil(t, w.TodayPct)
	assert.InDelta(t, 5.0/31*100, *w.TodayPct, 1e-9)
}

func TestGenerate_MonthOffsets(t *testing.T) {
	next, err := timeline.Generate(viewstate.ScaleMonth, date(time.January, 31), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", next.Start.String())
	assert.Equal(t, 28, next.TotalDays)

	prev, err := timeline.Generate(viewstate.ScaleMonth, date(time.January, 31), -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", prev.Start.String())
	assert.Equal(t, 31, prev.TotalDays)
}

func TestGenerate_Quarter(t *testing.T) {
	w, err := timeline.Generate(viewstate.ScaleQuarter, date(time.May, 20), 0)
	require.NoError(t, err)
	assert.Equal(t, "Q2 2025", w.Label)
	assert.Equal(t, "2025-04-01", w.Start.String())
	assert.Equal(t, "2025-07-01", w.End.String())
	assert.Equal(t, 91, w.TotalDays)
	require.Len(t, w.Units, 3)
	assert.Equal(t, "May 2025", w.Units[1].Label)

	later, err := timeline.Generate(viewstate.ScaleQuarter, date(time.May, 20), 2)
	require.NoError(t, err)
	assert.Equal(t, "Q4 2025", later.Label)
	assert.Equal(t, "2026-01-01", later.End.String())
}

func TestGenerate_Year(t *testing.T) {
	w, err := timeline.Generate(viewstate.ScaleYear, date(time.July, 4), 0)
	require.NoError(t, err)
	assert.Equal(t, 365, w.TotalDays)
	require.Len(t, w.Units, 4)
	assert.Equal(t, "Q1 2025", w.Units[0].Label)
	assert.Equal(t, "Q4 2025", w.Units[3].Label)
	assert.Equal(t, []string{"Oct", "Nov", "Dec"}, []string{
		w.Units[3].Subdivisions[0].Label, w.Units[3].Subdivisions[1].Label, w.Units[3].Subdivisions[2].Label,
	})

	leap, err := timeline.Generate(viewstate.ScaleYear, date(time.July, 4), -1)
	require.NoError(t, err)
	assert.Equal(t, 366, leap.TotalDays)
}

func TestGenerate_UnknownScale(t *testing.T) {
	_, err := timeline.Generate("decade", date(time.July, 4), 0)
	assert.Error(t, err)
}

func TestGenerate_UnitsTileTheWindow(t *testing.T) {
	scales := []viewstate.Scale{viewstate.ScaleWeek, viewstate.ScaleMonth, viewstate.ScaleQuarter, viewstate.ScaleYear}
	today := date(time.March, 15)
	for _, scale := range scales {
		for offset := -14; offset <= 14; offset++ {
			w, err := timeline.Generate(scale, today, offset)
			require.NoError(t, err)
			assert.Equal(t, w.Start.DaysUntil(w.End), w.TotalDays, "%s %d", scale, offset)

			cursor := w.Start
			for _, u := range w.Units {
				assert.True(t, u.Start.Equal(cursor), "%s %d unit %s", scale, offset, u.Label)
				sub := u.Start
				for _, s := range u.Subdivisions {
					assert.True(t, s.Start.Equal(sub), "%s %d subdivision %s", scale, offset, s.Label)
					assert.Greater(t, s.Days(), 0)
					sub = s.End
				}
				assert.True(t, sub.Equal(u.End))
				cursor = u.End
			}
			assert.True(t, cursor.Equal(w.End), "%s %d", scale, offset)
		}
	}
}
