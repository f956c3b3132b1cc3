package main

import (
	"os"

	"github.com/evandrarf/lessonhub/internal/config"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()
	log := config.NewLogger(viperConfig)
	log.SetOutput(os.Stderr)

	service := config.NewLessonClient(viperConfig, log)
	session := usecase.NewSessionUsecase(usecase.SessionConfig{Service: service, Log: log})

	cli := commandLine{
		out:       os.Stdout,
		log:       log,
		validator: validate.NewValidator(),
		store:     storage.NewMemoryStore(),
		session:   session,
		admin:     usecase.NewAdminUsecase(usecase.AdminConfig{Service: service, Session: session, Log: log}),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Errorf("%s", err)
		}
		os.Exit(1)
	}
}
