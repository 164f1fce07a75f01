package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/iliyamo/blog-api/internal/auth"
	"github.com/iliyamo/blog-api/internal/model"
	"github.com/iliyamo/blog-api/internal/policy"
)

// fakePosts keeps posts in memory with the same contract as the real
// repository: an absent row is sql.ErrNoRows.  goneAtWrite makes Update
// fail as if the row disappeared after it was loaded.
type fakePosts struct {
	rows        map[uint64]model.Post
	goneAtWrite bool
}

func (f *fakePosts) Create(_ context.Context, userID uint64, title, body string) (model.Post, error) {
	id := uint64(len(f.rows) + 1)
	p := model.Post{ID: id, UserID: userID, Title: title, Body: body}
	f.rows[id] = p
	return p, nil
}

func (f *fakePosts) GetByID(_ context.Context, id uint64) (model.Post, error) {
	p, ok := f.rows[id]
	if !ok {
		return model.Post{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePosts) ListAll(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	for _, p := range f.rows {
		posts = append(posts, p)
	}
	return posts, nil
}

func (f *fakePosts) Update(_ context.Context, id uint64, title, body string) (model.Post, error) {
	p, ok := f.rows[id]
	if !ok || f.goneAtWrite {
		return model.Post{}, sql.ErrNoRows
	}
	p.Title, p.Body = title, body
	f.rows[id] = p
	return p, nil
}

func (f *fakePosts) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

// fakeComments mirrors the post_id scoping of the real repository: a
// comment addressed through the wrong post reads as sql.ErrNoRows.
type fakeComments struct {
	rows        map[uint64]model.Comment
	goneAtWrite bool
}

func (f *fakeComments) scoped(postID, id uint64) (model.Comment, bool) {
	cm, ok := f.rows[id]
	if !ok || cm.PostID != postID {
		return model.Comment{}, false
	}
	return cm, true
}

func (f *fakeComments) Create(_ context.Context, postID, userID uint64, body string) (model.Comment, error) {
	id := uint64(len(f.rows) + 1)
	cm := model.Comment{ID: id, PostID: postID, UserID: userID, Body: body}
	f.rows[id] = cm
	return cm, nil
}

func (f *fakeComments) GetScoped(_ context.Context, postID, id uint64) (model.Comment, error) {
	cm, ok := f.scoped(postID, id)
	if !ok {
		return model.Comment{}, sql.ErrNoRows
	}
	return cm, nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID uint64) ([]model.Comment, error) {
	comments := []model.Comment{}
	for _, cm := range f.rows {
		if cm.PostID == postID {
			comments = append(comments, cm)
		}
	}
	return comments, nil
}

func (f *fakeComments) Update(_ context.Context, postID, id uint64, body string) (model.Comment, error) {
	cm, ok := f.scoped(postID, id)
	if !ok || f.goneAtWrite {
		return model.Comment{}, sql.ErrNoRows
	}
	cm.Body = body
	f.rows[id] = cm
	return cm, nil
}

func (f *fakeComments) Delete(_ context.Context, postID, id uint64) error {
	if _, ok := f.scoped(postID, id); !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

// seededStores returns fakes holding two posts by user 9 and one comment
// by user 9 under the first post.
func seededStores() (*fakePosts, *fakeComments) {
	posts := &fakePosts{rows: map[uint64]model.Post{
		1: {ID: 1, UserID: 9, Title: "First", Body: "Hello"},
		2: {ID: 2, UserID: 9, Title: "Second", Body: "World"},
	}}
	comments := &fakeComments{rows: map[uint64]model.Comment{
		5: {ID: 5, PostID: 1, UserID: 9, Body: "Nice"},
	}}
	return posts, comments
}

// A comment fetched through a post it does not belong to must read as
// missing, even when the caller could not touch it anyway.  404 here,
// never 403, so probing cannot reveal that the id exists elsewhere.
func TestShowCommentThroughWrongPost(t *testing.T) {
	posts, comments := seededStores()
	h := NewCommentHandler(posts, comments, policy.Default())

	c, rec := postContext(http.MethodGet, "/api/posts/2/comments/5", "", &auth.Identity{UserID: 3})
	c.SetParamNames("postID", "id")
	c.SetParamValues("2", "5")

	if err := h.Show(c); err != nil {
		t.Fatalf("Show() returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec.Code == http.StatusForbidden {
		t.Error("wrong-post lookup must not answer 403")
	}
}

func TestDeleteCommentTwice(t *testing.T) {
	posts, comments := seededStores()
	h := NewCommentHandler(posts, comments, policy.Default())
	owner := &auth.Identity{UserID: 9}

	c, rec := postContext(http.MethodDelete, "/api/posts/1/comments/5", "", owner)
	c.SetParamNames("postID", "id")
	c.SetParamValues("1", "5")
	if err := h.Destroy(c); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first delete status = %d, want 204", rec.Code)
	}

	c, rec = postContext(http.MethodDelete, "/api/posts/1/comments/5", "", owner)
	c.SetParamNames("postID", "id")
	c.SetParamValues("1", "5")
	if err := h.Destroy(c); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestDeletePostTwice(t *testing.T) {
	posts, comments := seededStores()
	h := NewPostHandler(posts, comments, policy.Default())
	owner := &auth.Identity{UserID: 9}

	c, rec := postContext(http.MethodDelete, "/api/posts/1", "", owner)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Destroy(c); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first delete status = %d, want 204", rec.Code)
	}

	c, rec = postContext(http.MethodDelete, "/api/posts/1", "", owner)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Destroy(c); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestUpdatePostGoneAtWrite(t *testing.T) {
	posts, comments := seededStores()
	posts.goneAtWrite = true
	h := NewPostHandler(posts, comments, policy.Default())

	c, rec := postContext(http.MethodPut, "/api/posts/1",
		`{"title":"Edited","body":"Hello"}`, &auth.Identity{UserID: 9})
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when the row vanished before the write", rec.Code)
	}
}

func TestUpdateCommentGoneAtWrite(t *testing.T) {
	posts, comments := seededStores()
	comments.goneAtWrite = true
	h := NewCommentHandler(posts, comments, policy.Default())

	c, rec := postContext(http.MethodPut, "/api/posts/1/comments/5",
		`{"body":"Edited"}`, &auth.Identity{UserID: 9})
	c.SetParamNames("postID", "id")
	c.SetParamValues("1", "5")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when the row vanished before the write", rec.Code)
	}
}
