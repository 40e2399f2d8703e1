package models

import "time"

type StoryStatus string

const (
	StatusBacklog    StoryStatus = "Backlog"
	StatusToDo       StoryStatus = "To Do"
	StatusInProgress StoryStatus = "In Progress"
	StatusBlocked    StoryStatus = "Blocked"
	StatusValidation StoryStatus = "Validation"
	StatusCompleted  StoryStatus = "Completed"
)

// StatusOrder is the fixed column order of the board.
var StatusOrder = []StoryStatus{
	StatusBacklog,
	StatusToDo,
	StatusInProgress,
	StatusBlocked,
	StatusValidation,
	StatusCompleted,
}

func (s StoryStatus) Valid() bool {
	for _, known := range StatusOrder {
		if s == known {
			return true
		}
	}
	return false
}

type StoryPriority string

const (
	PriorityLow    StoryPriority = "Low"
	PriorityMedium StoryPriority = "Medium"
	PriorityHigh   StoryPriority = "High"
)

func (p StoryPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type StoryType string

const (
	TypeStory StoryType = "Story"
	TypeBug   StoryType = "Bug"
	TypeEpic  StoryType = "Epic"
)

func (t StoryType) Valid() bool {
	switch t {
	case TypeStory, TypeBug, TypeEpic:
		return true
	}
	return false
}

const DefaultSprint = "sprint-1"

type Story struct {
	ID                 string
	Number             string
	Title              string
	Description        string
	AcceptanceCriteria string
	Points             int
	Status             StoryStatus
	Priority           StoryPriority
	Type               StoryType
	Project            string
	Workspace          string
	TeamLead           string
	Epic               string
	Sprint             string
	Tags               []string
	DueDate            *time.Time
	AssigneeID         *string
	CreatedBy          string
	UpdatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
