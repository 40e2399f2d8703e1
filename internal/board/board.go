// Package board partitions stories into the fixed status columns of
// the Kanban view. It is a pure projection of the story set: moving a
// story between columns is an ordinary status update followed by a
// recompute, never an incremental mutation of a column.
package board

import "github.com/shantnusharma/storyboard/internal/models"

// WIPLimits maps a status to its advisory work-in-progress cap. A
// zero or missing entry means the column is uncapped. Exceeding a
// cap only sets OverLimit on the column; it never blocks an update.
type WIPLimits map[models.StoryStatus]int

type Column struct {
	Status    models.StoryStatus `json:"status"`
	Stories   []models.Story     `json:"stories"`
	Count     int                `json:"count"`
	Points    int                `json:"points"`
	WIPLimit  int                `json:"wip_limit,omitempty"`
	OverLimit bool               `json:"over_limit"`
}

// Project groups stories into one column per status, in the board's
// fixed column order. Stories keep the order they were given in, so
// intra-column order is whatever the store returned. Stories with an
// unknown status are dropped, they cannot be rendered anywhere.
func Project(stories []models.Story, limits WIPLimits) []Column {
	columns := make([]Column, len(models.StatusOrder))
	index := make(map[models.StoryStatus]int, len(models.StatusOrder))
	for i, status := range models.StatusOrder {
		columns[i] = Column{
			Status:   status,
			Stories:  []models.Story{},
			WIPLimit: limits[status],
		}
		index[status] = i
	}

	for _, story := range stories {
		i, ok := index[story.Status]
		if !ok {
			continue
		}
		columns[i].Stories = append(columns[i].Stories, story)
		columns[i].Count++
		columns[i].Points += story.Points
	}

	for i := range columns {
		limit := columns[i].WIPLimit
		columns[i].OverLimit = limit > 0 && columns[i].Count > limit
	}
	return columns
}
