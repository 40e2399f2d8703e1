package models

import "time"

type SprintStatus string

const (
	SprintPlanning  SprintStatus = "Planning"
	SprintActive    SprintStatus = "Active"
	SprintCompleted SprintStatus = "Completed"
)

func (s SprintStatus) Valid() bool {
	switch s {
	case SprintPlanning, SprintActive, SprintCompleted:
		return true
	}
	return false
}

// Sprint is a named time-boxed container. Stories reference sprints
// by a loose string identifier, not a foreign key, so a story may
// carry a sprint id with no matching row.
type Sprint struct {
	ID        string
	Name      string
	Goal      string
	Status    SprintStatus
	Project   string
	StartDate time.Time
	EndDate   time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
