package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/valeryfun/mern-dev-connector/internal/controllers"
)

// Setup mounts health, docs and the API routes.
func Setup(app *fiber.App, h *controllers.PostHandler, secret string) {
	// Swagger API document
	app.Get("/docs/*", swagger.HandlerDefault)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	PostRoutes(app, h, secret)
}
