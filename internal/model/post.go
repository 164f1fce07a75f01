package model

import "time"

// Post is a row in the `posts` table.  UserID records the author so the
// policy engine can enforce owner-only mutation.  Comments is filled in by
// handlers when the post is returned with its comments eager-loaded; it is
// not a column.
type Post struct {
	ID        uint64    `json:"id"`         // posts.id
	UserID    uint64    `json:"user_id"`    // posts.user_id (author)
	Title     string    `json:"title"`      // posts.title (<=255 chars)
	Body      string    `json:"body"`       // posts.body
	CreatedAt time.Time `json:"created_at"` // posts.created_at
	UpdatedAt time.Time `json:"updated_at"` // posts.updated_at
	Comments  []Comment `json:"comments,omitempty"`
}

// Kind identifies the entity type for policy lookups.
func (Post) Kind() string { return "post" }

// OwnerID returns the authoring user's id.
func (p Post) OwnerID() uint64 { return p.UserID }
