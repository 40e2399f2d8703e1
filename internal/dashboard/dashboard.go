// Package dashboard computes read-side aggregates over the full
// story set. Every call recomputes from scratch; there is no cache.
package dashboard

import "github.com/shantnusharma/storyboard/internal/models"

type Metrics struct {
	TotalStories     int                          `json:"total_stories"`
	CompletedStories int                          `json:"completed_stories"`
	TotalPoints      int                          `json:"total_points"`
	TeamMembers      int                          `json:"team_members"`
	ByStatus         map[models.StoryStatus]int   `json:"by_status"`
	ByPriority       map[models.StoryPriority]int `json:"by_priority"`
}

// Compute builds the dashboard metrics. Histogram buckets are
// prefilled with every known status and priority so an empty bucket
// reads as zero instead of being absent.
func Compute(stories []models.Story, teamMembers int) Metrics {
	m := Metrics{
		TeamMembers: teamMembers,
		ByStatus:    make(map[models.StoryStatus]int, len(models.StatusOrder)),
		ByPriority:  make(map[models.StoryPriority]int, 3),
	}
	for _, status := range models.StatusOrder {
		m.ByStatus[status] = 0
	}
	for _, priority := range []models.StoryPriority{
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
	} {
		m.ByPriority[priority] = 0
	}

	for _, story := range stories {
		m.TotalStories++
		m.TotalPoints += story.Points
		m.ByStatus[story.Status]++
		m.ByPriority[story.Priority]++
		if story.Status == models.StatusCompleted {
			m.CompletedStories++
		}
	}
	return m
}
