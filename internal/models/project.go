package models

import "time"

// Project namespaces story numbers. The prefix is unique and becomes
// the leading part of every story number in the project, e.g. "T&D"
// for "T&D-1001".
type Project struct {
	ID          string
	Name        string
	Prefix      string
	Description string
	TeamLeadID  *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
