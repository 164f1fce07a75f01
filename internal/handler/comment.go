package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-api/internal/middleware"
	"github.com/iliyamo/blog-api/internal/model"
	"github.com/iliyamo/blog-api/internal/policy"
	"github.com/iliyamo/blog-api/internal/queue"
	"github.com/iliyamo/blog-api/internal/service"
)

// CommentHandler bundles dependencies for the nested comment endpoints.
// All lookups run scoped by the post id from the route, so a comment
// addressed through the wrong post is a 404, never a 403.
type CommentHandler struct {
	Posts    PostStore
	Comments CommentStore
	Policies *policy.Engine
}

func NewCommentHandler(p PostStore, cm CommentStore, pol *policy.Engine) *CommentHandler {
	return &CommentHandler{Posts: p, Comments: cm, Policies: pol}
}

type commentReq struct {
	Body string `json:"body"`
}

// loadPost resolves the :postID route segment to an existing post.
func (h *CommentHandler) loadPost(ctx context.Context, c echo.Context) (model.Post, bool, error) {
	postID, err := parseID(c, "postID")
	if err != nil {
		return model.Post{}, false, c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Post{}, false, c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return model.Post{}, false, c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return post, true, nil
}

// Index handles GET /api/posts/:postID/comments.
func (h *CommentHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, ok, err := h.loadPost(ctx, c)
	if !ok {
		return err
	}
	comments, err := h.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": comments})
}

// Store handles POST /api/posts/:postID/comments.
func (h *CommentHandler) Store(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := validateComment(req.Body); errs.any() {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, ok, err := h.loadPost(ctx, c)
	if !ok {
		return err
	}

	comment, err := h.Comments.Create(ctx, post.ID, id.UserID, req.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create comment failed"})
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = service.PublishActivity(pubCtx, queue.ActivityEvent{
			Kind:       queue.KindCommentCreated,
			PostID:     comment.PostID,
			CommentID:  comment.ID,
			UserID:     comment.UserID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"data": comment})
}

// Show handles GET /api/posts/:postID/comments/:id.
func (h *CommentHandler) Show(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "postID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.GetScoped(ctx, postID, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionView, comment) {
		return forbidden(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": comment})
}

// Update handles PUT /api/posts/:postID/comments/:id.
func (h *CommentHandler) Update(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "postID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := validateComment(req.Body); errs.any() {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.GetScoped(ctx, postID, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionUpdate, comment) {
		return forbidden(c)
	}

	updated, err := h.Comments.Update(ctx, postID, commentID, req.Body)
	if err != nil {
		// The row can vanish between the policy load and the write.
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update comment failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// Destroy handles DELETE /api/posts/:postID/comments/:id.
func (h *CommentHandler) Destroy(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
	}
	postID, err := parseID(c, "postID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.GetScoped(ctx, postID, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !h.Policies.Can(id, policy.ActionDelete, comment) {
		return forbidden(c)
	}
	if err := h.Comments.Delete(ctx, postID, commentID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete comment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
