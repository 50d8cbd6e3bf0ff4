package projection

import (
	"math"

	"planboard/internal/model"
)

// Progress is the share of non-archived tasks in a done-category status, as a
// rounded percentage. Zero tasks is 0%.
func Progress(tasks []*model.Task, statuses []*model.Status) int {
	done := map[string]bool{}
	for _, s := range statuses {
		if s.Category == model.CategoryDone {
			done[s.ID] = true
		}
	}
	total, completed := 0, 0
	for _, t := range tasks {
		if t.IsArchived {
			continue
		}
		total++
		if done[t.StatusID] {
			completed++
		}
	}
	return percent(completed, total)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
