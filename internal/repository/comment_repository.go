package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/blog-api/internal/model"
)

// CommentRepo persists rows of the 'comments' table.  Every single-row
// lookup and mutation is scoped by post_id: a comment addressed through
// the wrong post behaves exactly like a missing one (sql.ErrNoRows), so
// cross-post probing cannot distinguish "exists elsewhere" from "absent".
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment under the given post and returns the stored
// row.  The post must exist; the caller checks that before writing.
func (r *CommentRepo) Create(ctx context.Context, postID, userID uint64, body string) (model.Comment, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (post_id, user_id, body) VALUES (?,?,?)",
		postID, userID, body)
	if err != nil {
		return model.Comment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Comment{}, err
	}
	return r.GetScoped(ctx, postID, uint64(id))
}

// GetScoped fetches a comment by id within a post.
func (r *CommentRepo) GetScoped(ctx context.Context, postID, id uint64) (model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,post_id,user_id,body,created_at,updated_at FROM comments WHERE post_id=? AND id=? LIMIT 1",
		postID, id).Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListByPost returns all comments of a post ordered by id.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,post_id,user_id,body,created_at,updated_at FROM comments WHERE post_id=? ORDER BY id",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Update rewrites the body of a comment within a post and returns the
// stored row.  sql.ErrNoRows when the comment is absent or out of scope.
func (r *CommentRepo) Update(ctx context.Context, postID, id uint64, body string) (model.Comment, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE comments SET body=?, updated_at=NOW() WHERE post_id=? AND id=?",
		body, postID, id)
	if err != nil {
		return model.Comment{}, err
	}
	// RowsAffected is 0 both for a missing row and a no-op rewrite, so the
	// follow-up read is what distinguishes them.
	return r.GetScoped(ctx, postID, id)
}

// Delete removes a comment within a post.  Deleting an absent or
// out-of-scope comment reports sql.ErrNoRows.
func (r *CommentRepo) Delete(ctx context.Context, postID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM comments WHERE post_id=? AND id=?", postID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
