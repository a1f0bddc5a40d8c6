package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/valeryfun/mern-dev-connector/internal/controllers"
	"github.com/valeryfun/mern-dev-connector/internal/middleware"
)

// PostRoutes mounts the posts API. Every route requires a valid token.
func PostRoutes(app fiber.Router, h *controllers.PostHandler, secret string) {
	posts := app.Group("/posts", middleware.JWTUidOnly(secret), middleware.RequireAuth())

	// POST /posts
	posts.Post("/", h.CreatePost)

	// GET /posts
	posts.Get("/", h.ListPosts)

	// GET /posts/:id
	posts.Get("/:id", h.GetPost)

	// DELETE /posts/:id
	// only the author
	posts.Delete("/:id", h.DeletePost)

	// PUT /posts/like/:id
	posts.Put("/like/:id", h.LikePost)

	// PUT /posts/unlike/:id
	posts.Put("/unlike/:id", h.UnlikePost)

	// POST /posts/comment/:id
	posts.Post("/comment/:id", h.AddComment)

	// DELETE /posts/comment/:id/:comment_id
	// only the comment's author
	posts.Delete("/comment/:id/:comment_id", h.DeleteComment)
}
