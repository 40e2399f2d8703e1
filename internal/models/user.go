package models

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleTeamLead Role = "Team Lead"
	RoleUser     Role = "User"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	FullName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal is the authenticated identity attached to a request
// after the session middleware has resolved it.
type Principal struct {
	UserID    string
	SessionID string
	Username  string
	FullName  string
	Role      Role
}
