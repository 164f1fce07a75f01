package model

import "time"

// Comment is a row in the `comments` table.  Every comment belongs to
// exactly one post; repository lookups are always scoped by post_id so a
// comment requested through the wrong post resolves as not found.
type Comment struct {
	ID        uint64    `json:"id"`         // comments.id
	PostID    uint64    `json:"post_id"`    // comments.post_id (required FK)
	UserID    uint64    `json:"user_id"`    // comments.user_id (author)
	Body      string    `json:"body"`       // comments.body
	CreatedAt time.Time `json:"created_at"` // comments.created_at
	UpdatedAt time.Time `json:"updated_at"` // comments.updated_at
}

// Kind identifies the entity type for policy lookups.
func (Comment) Kind() string { return "comment" }

// OwnerID returns the authoring user's id.
func (c Comment) OwnerID() uint64 { return c.UserID }
