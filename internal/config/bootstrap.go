package config

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/handler"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/route"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/markup"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	Store     storage.Store
	Service   usecase.LessonService
	Log       *logrus.Logger
	Validator *validate.Validator
	// Quiet disables the request access log.
	Quiet bool
}

func NewLessonClient(config *viper.Viper, log *logrus.Logger) *lessonapi.Client {
	return lessonapi.New(lessonapi.Config{
		BaseURL: config.GetString("lesson_api.base_url"),
		Timeout: config.GetDuration("lesson_api.timeout"),
		Log:     log,
	})
}

func Bootstrap(config *BootstrapConfig) {
	if config.Service == nil {
		config.Service = NewLessonClient(config.Config, config.Log)
	}

	sessionUsecase := usecase.NewSessionUsecase(usecase.SessionConfig{
		Service: config.Service,
		Log:     config.Log,
	})
	progressUsecase := usecase.NewProgressUsecase(usecase.ProgressConfig{
		Service: config.Service,
		Session: sessionUsecase,
		Log:     config.Log,
	})
	lessonUsecase := usecase.NewLessonUsecase(usecase.LessonConfig{
		Service:  config.Service,
		Session:  sessionUsecase,
		Progress: progressUsecase,
		Renderer: markup.NewRenderer(),
		Log:      config.Log,
	})
	quizUsecase := usecase.NewQuizUsecase(usecase.QuizConfig{
		Service: config.Service,
		Session: sessionUsecase,
		Log:     config.Log,
	})
	adminUsecase := usecase.NewAdminUsecase(usecase.AdminConfig{
		Service: config.Service,
		Session: sessionUsecase,
		Log:     config.Log,
	})

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:     config.Log,
		Config:  config.Config,
		Store:   config.Store,
		Session: sessionUsecase,
	})

	variant := markup.ParseVariant(config.Config.GetString("render.variant"))

	route.Setup(&route.RouteConfig{
		Api:               config.Api,
		Middleware:        mid,
		AuthHandler:       handler.NewAuthHandler(config.Validator, config.Log, sessionUsecase),
		LessonHandler:     handler.NewLessonHandler(config.Validator, config.Log, lessonUsecase, variant),
		QuizHandler:       handler.NewQuizHandler(config.Validator, config.Log, quizUsecase),
		ProgressHandler:   handler.NewProgressHandler(config.Log, progressUsecase),
		AdminHandler:      handler.NewAdminHandler(config.Validator, config.Log, adminUsecase),
		DisableRequestLog: config.Quiet,
	})
}
