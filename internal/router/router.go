package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/blog-api/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// which load balancers and monitoring systems can probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the blog API.  Register and login are public (rate
// limited so credential guessing is throttled); everything else sits
// behind the gatekeeper, which validates the bearer token and resolves
// the requester identity before any handler runs.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, p *handler.PostHandler, cm *handler.CommentHandler, gate, limiter echo.MiddlewareFunc) {
	// Public auth endpoints.
	e.POST("/api/register", a.Register, limiter)
	e.POST("/api/login", a.Login, limiter)

	// Every route in this group runs the gatekeeper first.
	api := e.Group("/api")
	api.Use(gate)

	api.POST("/logout", a.Logout)
	api.POST("/refresh", a.Refresh)
	api.GET("/user-profile", a.UserProfile)

	// Posts resource.
	api.GET("/posts", p.Index)
	api.POST("/posts", p.Store)
	api.GET("/posts/:id", p.Show)
	api.PUT("/posts/:id", p.Update)
	api.DELETE("/posts/:id", p.Destroy)

	// Comments nested under their post; single-comment routes stay nested
	// so lookups are always scoped by the parent post.
	api.GET("/posts/:postID/comments", cm.Index)
	api.POST("/posts/:postID/comments", cm.Store)
	api.GET("/posts/:postID/comments/:id", cm.Show)
	api.PUT("/posts/:postID/comments/:id", cm.Update)
	api.DELETE("/posts/:postID/comments/:id", cm.Destroy)
}
