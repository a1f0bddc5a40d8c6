package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/valeryfun/mern-dev-connector/internal/controllers"
	"github.com/valeryfun/mern-dev-connector/internal/logger"
	"github.com/valeryfun/mern-dev-connector/internal/routes"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

type Deps struct {
	Posts          *services.PostService
	Log            logrus.FieldLogger
	JWTSecret      string
	RequestTimeout time.Duration
	CORSOrigins    string
}

// New builds the Fiber app with middleware and routes mounted.
func New(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.CORSOrigins == "" {
		d.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "devconnector-posts",
		ErrorHandler: controllers.ErrorHandler(d.Log),
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(logger.Middleware(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-auth-token",
	}))

	h := controllers.NewPostHandler(d.Posts, d.Log, d.RequestTimeout)
	routes.Setup(app, h, d.JWTSecret)
	return app
}
