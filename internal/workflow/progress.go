package workflow

import (
	"slices"

	"probuild/internal/models"
)

// Progress is the job's position among the active statuses as a percentage.
// Keys that are inactive or unknown report 0.
func Progress(statuses []*models.JobStatus, key string) int {
	active := make([]*models.JobStatus, 0, len(statuses))
	for _, s := range statuses {
		if s.IsActive {
			active = append(active, s)
		}
	}
	slices.SortStableFunc(active, func(a, b *models.JobStatus) int { return a.Position - b.Position })
	for i, s := range active {
		if s.Key == key {
			return (i + 1) * 100 / len(active)
		}
	}
	return 0
}
