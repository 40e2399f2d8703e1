// Package estimate derives a story-point and priority suggestion
// from free text. It is a deterministic keyword and length heuristic,
// not a model.
package estimate

import (
	"strings"

	"github.com/shantnusharma/storyboard/internal/models"
)

type Estimate struct {
	Points   int                  `json:"points"`
	Priority models.StoryPriority `json:"priority"`
}

var highPriorityWords = []string{"critical", "urgent", "bug", "security"}

var lowPriorityWords = []string{"nice", "enhancement", "improvement"}

// FromText estimates points from the combined length of title and
// description, and priority from keyword presence. Longer text means
// a higher estimate; high-signal words beat low-signal words.
func FromText(title, description string) Estimate {
	combined := strings.TrimSpace(title + " " + description)

	points := 5
	switch n := len(combined); {
	case n <= 50:
		points = 3
	case n <= 100:
		points = 4
	}

	lowered := strings.ToLower(combined)
	priority := models.PriorityMedium
	if containsAny(lowered, lowPriorityWords) {
		priority = models.PriorityLow
	}
	if containsAny(lowered, highPriorityWords) {
		priority = models.PriorityHigh
	}

	return Estimate{Points: points, Priority: priority}
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
