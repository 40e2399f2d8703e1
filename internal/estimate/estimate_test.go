package estimate

import (
	"strings"
	"testing"

	"github.com/shantnusharma/storyboard/internal/models"
)

func TestFromText(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		description  string
		wantPoints   int
		wantPriority models.StoryPriority
	}{
		{
			name:         "short neutral text",
			title:        "Add avatar upload",
			description:  "",
			wantPoints:   3,
			wantPriority: models.PriorityMedium,
		},
		{
			name:         "bug keyword forces high",
			title:        "Fix login bug",
			description:  "Session cookie is dropped",
			wantPoints:   3,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "keyword match is case insensitive",
			title:        "CRITICAL outage",
			description:  "",
			wantPoints:   3,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "enhancement keyword lowers priority",
			title:        "Nice to have enhancement",
			description:  "",
			wantPoints:   3,
			wantPriority: models.PriorityLow,
		},
		{
			name:         "high signal beats low signal",
			title:        "Urgent improvement to checkout",
			description:  "",
			wantPoints:   3,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "medium length gets four points",
			title:        "Rework board filters",
			description:  strings.Repeat("detail ", 10),
			wantPoints:   4,
			wantPriority: models.PriorityMedium,
		},
		{
			name:         "long text gets five points",
			title:        "Migrate reporting pipeline",
			description:  strings.Repeat("the old exporter has to keep running ", 5),
			wantPoints:   5,
			wantPriority: models.PriorityMedium,
		},
		{
			name:         "empty input still returns a suggestion",
			title:        "",
			description:  "",
			wantPoints:   3,
			wantPriority: models.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromText(tt.title, tt.description)
			if got.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", got.Points, tt.wantPoints)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("priority = %q, want %q", got.Priority, tt.wantPriority)
			}
		})
	}
}

func TestFromTextIsDeterministic(t *testing.T) {
	first := FromText("Fix login bug", "repro steps attached")
	for i := 0; i < 5; i++ {
		again := FromText("Fix login bug", "repro steps attached")
		if again != first {
			t.Fatalf("estimate changed between calls: %+v vs %+v", first, again)
		}
	}
}
