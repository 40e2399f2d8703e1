package dashboard

import (
	"testing"

	"github.com/shantnusharma/storyboard/internal/models"
)

func TestComputeEmpty(t *testing.T) {
	m := Compute(nil, 4)

	if m.TotalStories != 0 || m.CompletedStories != 0 || m.TotalPoints != 0 {
		t.Errorf("empty story set produced non-zero totals: %+v", m)
	}
	if m.TeamMembers != 4 {
		t.Errorf("team members = %d, want 4", m.TeamMembers)
	}
	for _, status := range models.StatusOrder {
		if n, ok := m.ByStatus[status]; !ok || n != 0 {
			t.Errorf("ByStatus[%q] = %d, %v; want 0, present", status, n, ok)
		}
	}
	for _, priority := range []models.StoryPriority{
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
	} {
		if n, ok := m.ByPriority[priority]; !ok || n != 0 {
			t.Errorf("ByPriority[%q] = %d, %v; want 0, present", priority, n, ok)
		}
	}
}

func TestCompute(t *testing.T) {
	stories := []models.Story{
		{Status: models.StatusToDo, Priority: models.PriorityHigh, Points: 3},
		{Status: models.StatusInProgress, Priority: models.PriorityMedium, Points: 5},
		{Status: models.StatusCompleted, Priority: models.PriorityMedium, Points: 2},
		{Status: models.StatusCompleted, Priority: models.PriorityLow, Points: 1},
	}

	m := Compute(stories, 2)

	if m.TotalStories != 4 {
		t.Errorf("total stories = %d, want 4", m.TotalStories)
	}
	if m.CompletedStories != 2 {
		t.Errorf("completed stories = %d, want 2", m.CompletedStories)
	}
	if m.TotalPoints != 11 {
		t.Errorf("total points = %d, want 11", m.TotalPoints)
	}
	if m.ByStatus[models.StatusCompleted] != 2 {
		t.Errorf("ByStatus[Completed] = %d, want 2", m.ByStatus[models.StatusCompleted])
	}
	if m.ByPriority[models.PriorityMedium] != 2 {
		t.Errorf("ByPriority[Medium] = %d, want 2", m.ByPriority[models.PriorityMedium])
	}

	sumStatus := 0
	for _, n := range m.ByStatus {
		sumStatus += n
	}
	if sumStatus != m.TotalStories {
		t.Errorf("status histogram sums to %d, want %d", sumStatus, m.TotalStories)
	}
	sumPriority := 0
	for _, n := range m.ByPriority {
		sumPriority += n
	}
	if sumPriority != m.TotalStories {
		t.Errorf("priority histogram sums to %d, want %d", sumPriority, m.TotalStories)
	}
}
