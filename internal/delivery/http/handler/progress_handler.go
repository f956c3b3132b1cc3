package handler

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ProgressHandler interface {
		Get(ctx *fiber.Ctx) error
	}

	progressHandler struct {
		logger  *logrus.Logger
		usecase usecase.ProgressUsecase
	}
)

func NewProgressHandler(logger *logrus.Logger, usecase usecase.ProgressUsecase) ProgressHandler {
	return &progressHandler{
		logger:  logger,
		usecase: usecase,
	}
}

// GET /progress
func (h *progressHandler) Get(ctx *fiber.Ctx) error {
	progress, err := h.usecase.Get(ctx.UserContext(), middleware.ClientStore(ctx))
	if err != nil {
		return response.NewFailed(domain.PROGRESS_GET_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.PROGRESS_GET_SUCCESS, progress, nil).Send(ctx)
}
