package route

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/handler"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoute(api *fiber.App, handler handler.AuthHandler, m *middleware.Middleware) {
	router := api.Group("/auth")
	{
		router.Post("/login", handler.Login)
		router.Post("/register", handler.Register)
		router.Post("/logout", handler.Logout)
		router.Get("/session", handler.Session)
	}
}
