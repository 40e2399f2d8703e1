package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shantnusharma/storyboard/internal/models"
)

func validStory() models.Story {
	return models.Story{
		Title:    "Add avatar upload",
		Points:   3,
		Status:   models.StatusToDo,
		Priority: models.PriorityMedium,
		Type:     models.TypeStory,
		Project:  "T&D",
	}
}

func TestValidateStoryFields(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := now.Add(-2 * time.Hour)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		mutate  func(s *models.Story)
		wantErr error
	}{
		{
			name:   "valid story",
			mutate: func(*models.Story) {},
		},
		{
			name:    "unknown status",
			mutate:  func(s *models.Story) { s.Status = "Archived" },
			wantErr: ErrInvalidStoryStatus,
		},
		{
			name:    "unknown priority",
			mutate:  func(s *models.Story) { s.Priority = "Urgent" },
			wantErr: ErrInvalidStoryPriority,
		},
		{
			name:    "unknown type",
			mutate:  func(s *models.Story) { s.Type = "Spike" },
			wantErr: ErrInvalidStoryType,
		},
		{
			name:    "points below range",
			mutate:  func(s *models.Story) { s.Points = 0 },
			wantErr: ErrInvalidStoryPoints,
		},
		{
			name:    "points above range",
			mutate:  func(s *models.Story) { s.Points = 8 },
			wantErr: ErrInvalidStoryPoints,
		},
		{
			name:    "due date yesterday",
			mutate:  func(s *models.Story) { s.DueDate = &yesterday },
			wantErr: ErrPastDueDate,
		},
		{
			name:   "due date earlier today is allowed",
			mutate: func(s *models.Story) { s.DueDate = &earlierToday },
		},
		{
			name:   "due date tomorrow",
			mutate: func(s *models.Story) { s.DueDate = &tomorrow },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story := validStory()
			tt.mutate(&story)

			err := validateStoryFields(&story, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateStoryFields() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
