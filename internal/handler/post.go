package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-api/internal/middleware"
	"github.com/iliyamo/blog-api/internal/model"
	"github.com/iliyamo/blog-api/internal/policy"
	"github.com/iliyamo/blog-api/internal/queue"
	"github.com/iliyamo/blog-api/internal/service"
)

// PostStore is the slice of repository.PostRepo the post endpoints use.
// Absent rows are reported as sql.ErrNoRows.
type PostStore interface {
	Create(ctx context.Context, userID uint64, title, body string) (model.Post, error)
	GetByID(ctx context.Context, id uint64) (model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, id uint64, title, body string) (model.Post, error)
	Delete(ctx context.Context, id uint64) error
}

// CommentStore is the slice of repository.CommentRepo the endpoints use.
// Single-row operations are scoped by post id; an out-of-scope comment is
// sql.ErrNoRows, same as an absent one.
type CommentStore interface {
	Create(ctx context.Context, postID, userID uint64, body string) (model.Comment, error)
	GetScoped(ctx context.Context, postID, id uint64) (model.Comment, error)
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
	Update(ctx context.Context, postID, id uint64, body string) (model.Comment, error)
	Delete(ctx context.Context, postID, id uint64) error
}

// PostHandler bundles dependencies for the post CRUD endpoints.  Policy
// denials surface as 403 and are checked only after the entity was found,
// so 404 and 403 never leak into each other.
type PostHandler struct {
	Posts    PostStore
	Comments CommentStore
	Policies *policy.Engine
}

func NewPostHandler(p PostStore, cm CommentStore, pol *policy.Engine) *PostHandler {
	return &PostHandler{Posts: p, Comments: cm, Policies: pol}
}

type postReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// parseID converts a path parameter into a numeric id.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"message": "This action is unauthorized."})
}

// Index handles GET /api/posts: every post with its comments eager-loaded.
func (h *PostHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	for i := range posts {
		comments, err := h.Comments.ListByPost(ctx, posts[i].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
		}
		posts[i].Comments = comments
	}
	return c.JSON(http.StatusOK, echo.Map{"data": posts})
}

// Store handles POST /api/posts.
func (h *PostHandler) Store(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := validatePost(req.Title, req.Body); errs.any() {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.Create(ctx, id.UserID, req.Title, req.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create post failed"})
	}

	// Fire-and-forget activity event; a broker outage must not fail the write.
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = service.PublishActivity(pubCtx, queue.ActivityEvent{
			Kind:       queue.KindPostCreated,
			PostID:     post.ID,
			UserID:     post.UserID,
			Title:      post.Title,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"data": post})
}

// Show handles GET /api/posts/:id.
func (h *PostHandler) Show(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionView, post) {
		return forbidden(c)
	}
	comments, err := h.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	post.Comments = comments
	return c.JSON(http.StatusOK, echo.Map{"data": post})
}

// Update handles PUT /api/posts/:id.
func (h *PostHandler) Update(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := validatePost(req.Title, req.Body); errs.any() {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionUpdate, post) {
		return forbidden(c)
	}

	updated, err := h.Posts.Update(ctx, post.ID, req.Title, req.Body)
	if err != nil {
		// The row can vanish between the policy load and the write.
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update post failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// Destroy handles DELETE /api/posts/:id.  The post's comments go with it.
func (h *PostHandler) Destroy(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionDelete, post) {
		return forbidden(c)
	}
	if err := h.Posts.Delete(ctx, post.ID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete post failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
