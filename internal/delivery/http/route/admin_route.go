package route

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/handler"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoute(api *fiber.App, handler handler.AdminHandler, m *middleware.Middleware) {
	router := api.Group("/admin", m.RequireAdmin())
	{
		router.Get("/stats", handler.Stats)
		router.Get("/users", handler.Users)
		router.Patch("/users/:id", handler.UpdateUser)
		router.Delete("/users/:id", handler.DeleteUser)
	}
}
