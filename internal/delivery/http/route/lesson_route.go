package route

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/handler"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupLessonRoute(api *fiber.App, lesson handler.LessonHandler, quiz handler.QuizHandler, m *middleware.Middleware) {
	router := api.Group("/lessons", m.RequireSession())
	{
		router.Get("/", lesson.List)
		router.Get("/:id", lesson.Get)
		router.Post("/:id/complete", lesson.Complete)
		router.Get("/:id/tabs/:tab", lesson.RenderTab)
		router.Put("/:id/tabs/:tab/blanks/:n", lesson.SetBlank)
		router.Put("/:id/tabs/:tab/checkboxes/:line", lesson.SetCheckbox)
	}

	quizRouter := router.Group("/:id/quiz")
	{
		quizRouter.Get("/", quiz.Get)
		quizRouter.Post("/answer", quiz.Answer)
		quizRouter.Post("/toggle", quiz.Toggle)
		quizRouter.Post("/next", quiz.Next)
		quizRouter.Post("/previous", quiz.Previous)
		quizRouter.Post("/retake", quiz.Retake)
	}
}

func SetupProgressRoute(api *fiber.App, handler handler.ProgressHandler, m *middleware.Middleware) {
	api.Get("/progress", handler.Get)
}
