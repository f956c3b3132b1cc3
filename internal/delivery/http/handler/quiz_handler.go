package handler

import (
	"context"

	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	QuizHandler interface {
		Get(ctx *fiber.Ctx) error
		Answer(ctx *fiber.Ctx) error
		Toggle(ctx *fiber.Ctx) error
		Next(ctx *fiber.Ctx) error
		Previous(ctx *fiber.Ctx) error
		Retake(ctx *fiber.Ctx) error
	}

	quizHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.QuizUsecase
	}
)

func NewQuizHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.QuizUsecase) QuizHandler {
	return &quizHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

type quizStep func(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error)

func (h *quizHandler) run(ctx *fiber.Ctx, msg, failed string, step quizStep) error {
	view, err := step(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id")))
	if err != nil {
		return response.NewFailed(failed, httpError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(msg, view, nil).Send(ctx)
}

// GET /lessons/:id/quiz
func (h *quizHandler) Get(ctx *fiber.Ctx) error {
	return h.run(ctx, domain.QUIZ_GET_SUCCESS, domain.QUIZ_GET_FAILED, h.usecase.View)
}

// POST /lessons/:id/quiz/answer
func (h *quizHandler) Answer(ctx *fiber.Ctx) error {
	var req entity.QuizAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_UPDATE_FAILED, err, h.logger).Send(ctx)
	}
	if req.Choice == nil && req.Value == nil {
		return response.NewFailed(domain.QUIZ_UPDATE_FAILED, fiber.NewError(fiber.StatusBadRequest, "choice or value is required"), h.logger).Send(ctx)
	}

	return h.run(ctx, domain.QUIZ_UPDATE_SUCCESS, domain.QUIZ_UPDATE_FAILED, func(c context.Context, s storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
		return h.usecase.Answer(c, s, id, req)
	})
}

// POST /lessons/:id/quiz/toggle
func (h *quizHandler) Toggle(ctx *fiber.Ctx) error {
	var req entity.QuizToggleRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_UPDATE_FAILED, err, h.logger).Send(ctx)
	}

	return h.run(ctx, domain.QUIZ_UPDATE_SUCCESS, domain.QUIZ_UPDATE_FAILED, func(c context.Context, s storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
		return h.usecase.Toggle(c, s, id, *req.Option)
	})
}

// POST /lessons/:id/quiz/next
func (h *quizHandler) Next(ctx *fiber.Ctx) error {
	return h.run(ctx, domain.QUIZ_UPDATE_SUCCESS, domain.QUIZ_UPDATE_FAILED, h.usecase.Next)
}

// POST /lessons/:id/quiz/previous
func (h *quizHandler) Previous(ctx *fiber.Ctx) error {
	return h.run(ctx, domain.QUIZ_UPDATE_SUCCESS, domain.QUIZ_UPDATE_FAILED, h.usecase.Previous)
}

// POST /lessons/:id/quiz/retake
func (h *quizHandler) Retake(ctx *fiber.Ctx) error {
	return h.run(ctx, domain.QUIZ_UPDATE_SUCCESS, domain.QUIZ_UPDATE_FAILED, h.usecase.Retake)
}
