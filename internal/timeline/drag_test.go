package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/loader"
	"planboard/internal/model"
	"planboard/internal/repository"
	"planboard/internal/timeline"
	"planboard/internal/viewstate"
)

// 310px track on a 31-day window: 10px per day.
const track = 310.0

var created = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*timeline.Engine, *repository.Store, *timeline.Window) {
	t.Helper()
	c := &loader.Collections{
		Projects: []*model.Project{{ID: "p", Identifier: "P"}},
		Tasks: []*model.Task{
			{ID: "span", ProjectID: "p", SequenceID: 1, StartDate: model.DatePtr(date(time.January, 1)), DueDate: model.DatePtr(date(time.January, 8)), UpdatedAt: created},
			{ID: "late", ProjectID: "p", SequenceID: 2, StartDate: model.DatePtr(date(time.January, 11)), DueDate: model.DatePtr(date(time.January, 21)), UpdatedAt: created},
			{ID: "point", ProjectID: "p", SequenceID: 3, StartDate: model.DatePtr(date(time.January, 5)), DueDate: model.DatePtr(date(time.January, 5)), UpdatedAt: created},
			{ID: "undated", ProjectID: "p", SequenceID: 4, UpdatedAt: created},
		},
	}
	store := repository.NewStore(c, repository.WithClock(func() time.Time { return created.Add(time.Hour) }))
	return timeline.NewEngine(store), store, januaryWindow(t)
}

func TestRelease_ResizeRightPersistsDueDate(t *testing.T) {
	engine, store, w := setupEngine(t)

	require.NoError(t, engine.Begin("span", timeline.ModeResizeRight, w, 100, track))
	bar, err := engine.Drag(170)
	require.NoError(t, err)
	assert.InDelta(t, 45.16, bar.Width, 0.01)

	res, err := engine.Release()
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.IsType(t, timeline.Idle{}, engine.State())

	task, err := store.GetTaskByID("span")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", task.StartDate.String())
	assert.Equal(t, "2025-01-15", task.DueDate.String())
	assert.Equal(t, created.Add(time.Hour), task.UpdatedAt)

	// Re-rendering from the persisted dates reproduces the released geometry.
	again, ok := w.BarFor(task)
	require.True(t, ok)
	assert.InDelta(t, bar.Width, again.Width, 1e-9)
	assert.InDelta(t, bar.Left, again.Left, 1e-9)
}

func TestDrag_MoveKeepsWidthAndClamps(t *testing.T) {
	engine, store, w := setupEngine(t)
	require.NoError(t, engine.Begin("span", timeline.ModeMove, w, 0, track))

	bar, err := engine.Drag(-500)
	require.NoError(t, err)
	assert.InDelta(t, 0, bar.Left, 1e-9)

	bar, err = engine.Drag(5000)
	require.NoError(t, err)
	assert.InDelta(t, 100-7.0/31*100, bar.Left, 1e-9)
	assert.InDelta(t, 7.0/31*100, bar.Width, 1e-9)

	_, err = engine.Drag(50)
	require.NoError(t, err)
	res, err := engine.Release()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", res.StartDate.String())
	assert.Equal(t, "2025-01-13", res.DueDate.String())
	assert.Equal(t, "Dates updated: Jan 6 to Jan 13, 2025", res.Message())

	task, _ := store.GetTaskByID("span")
	assert.Equal(t, "2025-01-13", task.DueDate.String())
}

func TestDrag_ResizeLeftRejectsBelowFloor(t *testing.T) {
	engine, _, w := setupEngine(t)
	require.NoError(t, engine.Begin("span", timeline.ModeResizeLeft, w, 0, track))
	orig := engine.State().(timeline.Dragging).Orig

	bar, err := engine.Drag(69)
	require.NoError(t, err)
	assert.Equal(t, orig, bar)

	bar, err = engine.Drag(60)
	require.NoError(t, err)
	assert.InDelta(t, 6.0/31*100, bar.Left, 1e-9)
	assert.InDelta(t, orig.Right(), bar.Right(), 1e-9)

	rejected, err := engine.Drag(300)
	require.NoError(t, err)
	assert.Equal(t, bar, rejected)
}

func TestDrag_ResizeLeftClampsAtTrackStart(t *testing.T) {
	engine, _, w := setupEngine(t)
	require.NoError(t, engine.Begin("late", timeline.ModeResizeLeft, w, 200, track))

	bar, err := engine.Drag(-1000)
	require.NoError(t, err)
	assert.InDelta(t, 0, bar.Left, 1e-9)
	assert.InDelta(t, 20.0/31*100, bar.Width, 1e-9)
}

func TestDrag_ResizeRightFloorAndCap(t *testing.T) {
	engine, _, w := setupEngine(t)
	require.NoError(t, engine.Begin("late", timeline.ModeResizeRight, w, 0, track))

	bar, err := engine.Drag(-1000)
	require.NoError(t, err)
	assert.InDelta(t, timeline.MinWidth, bar.Width, 1e-9)

	bar, err = engine.Drag(1000)
	require.NoError(t, err)
	assert.InDelta(t, 100, bar.Right(), 1e-9)
}

func TestRelease_WithoutMovementWritesNothing(t *testing.T) {
	engine, store, w := setupEngine(t)
	require.NoError(t, engine.Begin("point", timeline.ModeMove, w, 40, track))

	res, err := engine.Release()
	require.NoError(t, err)
	assert.False(t, res.Changed)

	task, _ := store.GetTaskByID("point")
	assert.Equal(t, "2025-01-05", task.DueDate.String())
	assert.Equal(t, created, task.UpdatedAt)
}

func TestDrag_ResizeRightWithoutDeltaKeepsShortBar(t *testing.T) {
	engine, store, _ := setupEngine(t)
	year, err := timeline.Generate(viewstate.ScaleYear, date(time.January, 6), 0)
	require.NoError(t, err)
	require.NoError(t, engine.Begin("point", timeline.ModeResizeRight, year, 200, track))
	orig := engine.State().(timeline.Dragging).Orig
	require.Less(t, orig.Width, timeline.MinWidth)

	bar, err := engine.Drag(201)
	require.NoError(t, err)
	assert.InDelta(t, timeline.MinWidth, bar.Width, 1e-9)
	// возврат в исходную точку восстанавливает исходную ширину
	bar, err = engine.Drag(200)
	require.NoError(t, err)
	assert.Equal(t, orig, bar)

	res, err := engine.Release()
	require.NoError(t, err)
	assert.False(t, res.Changed)
	task, _ := store.GetTaskByID("point")
	assert.Equal(t, "2025-01-05", task.DueDate.String())
	assert.Equal(t, created, task.UpdatedAt)
}

func TestCancel_LeavesDatesUntouched(t *testing.T) {
	engine, store, w := setupEngine(t)
	require.NoError(t, engine.Begin("span", timeline.ModeMove, w, 0, track))
	_, err := engine.Drag(100)
	require.NoError(t, err)

	assert.True(t, engine.Cancel())
	assert.False(t, engine.Cancel())

	task, _ := store.GetTaskByID("span")
	assert.Equal(t, "2025-01-01", task.StartDate.String())
	_, err = engine.Release()
	assert.ErrorIs(t, err, timeline.ErrNotDragging)
}

func TestEngine_Guards(t *testing.T) {
	engine, _, w := setupEngine(t)

	_, err := engine.Drag(10)
	assert.ErrorIs(t, err, timeline.ErrNotDragging)
	assert.ErrorIs(t, engine.Begin("undated", timeline.ModeMove, w, 0, track), timeline.ErrNoBar)
	assert.ErrorIs(t, engine.Begin("span", timeline.ModeMove, w, 0, 0), timeline.ErrTrackWidth)
	assert.ErrorIs(t, engine.Begin("nope", timeline.ModeMove, w, 0, track), repository.ErrTaskNotFound)

	require.NoError(t, engine.Begin("span", timeline.ModeMove, w, 0, track))
	assert.ErrorIs(t, engine.Begin("late", timeline.ModeMove, w, 0, track), timeline.ErrAlreadyDragging)
}

func TestParseMode(t *testing.T) {
	for _, m := range []timeline.Mode{timeline.ModeMove, timeline.ModeResizeLeft, timeline.ModeResizeRight} {
		parsed, err := timeline.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := timeline.ParseMode("spin")
	assert.Error(t, err)
}
