package route

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/handler"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	AuthHandler     handler.AuthHandler
	LessonHandler   handler.LessonHandler
	QuizHandler     handler.QuizHandler
	ProgressHandler handler.ProgressHandler
	AdminHandler    handler.AdminHandler
	// DisableRequestLog turns off the fiber access log (tests).
	DisableRequestLog bool
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	if !c.DisableRequestLog {
		c.Api.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
		}))
	}
	c.Api.Use(c.Middleware.CorsMiddleware())
	c.Api.Use(c.Middleware.ClientScope())

	c.Api.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	SetupAuthRoute(c.Api, c.AuthHandler, c.Middleware)
	SetupLessonRoute(c.Api, c.LessonHandler, c.QuizHandler, c.Middleware)
	SetupProgressRoute(c.Api, c.ProgressHandler, c.Middleware)
	SetupAdminRoute(c.Api, c.AdminHandler, c.Middleware)
}
