package models

import "time"

type Comment struct {
	ID        string
	StoryID   string
	AuthorID  string
	Text      string
	CreatedAt time.Time

	// AuthorName and AuthorUsername are joined from the users
	// table when listing; they are not stored on the comment row.
	AuthorName     string
	AuthorUsername string
}
