// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event kinds published on the blog.activity queue.
const (
	KindPostCreated    = "post.created"
	KindCommentCreated = "comment.created"
)

// ActivityEvent is published when a post or comment is created.  It
// carries enough for downstream consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
	Kind       string `json:"kind"`
	PostID     uint64 `json:"post_id"`
	CommentID  uint64 `json:"comment_id,omitempty"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
