package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/blog-api/internal/model"
)

// PostRepo persists rows of the 'posts' table.  Not-found is reported as
// sql.ErrNoRows so handlers can map it to 404 uniformly.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post for the given author and returns the stored row.
func (r *PostRepo) Create(ctx context.Context, userID uint64, title, body string) (model.Post, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (user_id, title, body) VALUES (?,?,?)",
		userID, title, body)
	if err != nil {
		return model.Post{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a post by id.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,title,body,created_at,updated_at FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListAll returns every post ordered by id.
func (r *PostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,title,body,created_at,updated_at FROM posts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update rewrites title and body and returns the stored row.
func (r *PostRepo) Update(ctx context.Context, id uint64, title, body string) (model.Post, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET title=?, body=?, updated_at=NOW() WHERE id=?",
		title, body, id)
	if err != nil {
		return model.Post{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a post and its comments in one transaction.  Comments go
// first so the post_id foreign key never dangles.  Deleting a post that is
// already gone reports sql.ErrNoRows, never a silent success.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
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
	return tx.Commit()
}
