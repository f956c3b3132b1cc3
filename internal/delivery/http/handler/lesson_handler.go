package handler

import (
	"strconv"

	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/markup"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	LessonHandler interface {
		List(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		RenderTab(ctx *fiber.Ctx) error
		SetBlank(ctx *fiber.Ctx) error
		SetCheckbox(ctx *fiber.Ctx) error
		Complete(ctx *fiber.Ctx) error
	}

	lessonHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.LessonUsecase
		variant   markup.Variant
	}
)

func NewLessonHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.LessonUsecase, variant markup.Variant) LessonHandler {
	return &lessonHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
		variant:   variant,
	}
}

// GET /lessons
func (h *lessonHandler) List(ctx *fiber.Ctx) error {
	lessons, err := h.usecase.List(ctx.UserContext(), middleware.ClientStore(ctx))
	if err != nil {
		return response.NewFailed(domain.LESSON_LIST_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_LIST_SUCCESS, lessons, fiber.Map{"total": len(lessons)}).Send(ctx)
}

// GET /lessons/:id
func (h *lessonHandler) Get(ctx *fiber.Ctx) error {
	lesson, err := h.usecase.View(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id")))
	if err != nil {
		return response.NewFailed(domain.LESSON_GET_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_GET_SUCCESS, lesson, nil).Send(ctx)
}

// GET /lessons/:id/tabs/:tab?variant=minimal|enhanced
func (h *lessonHandler) RenderTab(ctx *fiber.Ctx) error {
	variant := h.variant
	if v := ctx.Query("variant"); v != "" {
		variant = markup.ParseVariant(v)
	}

	view, err := h.usecase.RenderTab(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id")), ctx.Params("tab"), variant)
	if err != nil {
		return response.NewFailed(domain.LESSON_TAB_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_TAB_SUCCESS, view, nil).Send(ctx)
}

// PUT /lessons/:id/tabs/:tab/blanks/:n
func (h *lessonHandler) SetBlank(ctx *fiber.Ctx) error {
	n, err := strconv.Atoi(ctx.Params("n"))
	if err != nil || n < 0 {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, fiber.NewError(fiber.StatusBadRequest, "blank index must be a non-negative integer"), h.logger).Send(ctx)
	}

	var req entity.BlankRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, err, h.logger).Send(ctx)
	}

	store := middleware.ClientStore(ctx)
	if err := h.usecase.SetBlank(ctx.UserContext(), store, lessonapi.ID(ctx.Params("id")), ctx.Params("tab"), n, req.Value); err != nil {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_FIELD_SUCCESS, fiber.Map{"index": n, "value": req.Value}, nil).Send(ctx)
}

// PUT /lessons/:id/tabs/:tab/checkboxes/:line
func (h *lessonHandler) SetCheckbox(ctx *fiber.Ctx) error {
	line, err := strconv.Atoi(ctx.Params("line"))
	if err != nil || line < 0 {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, fiber.NewError(fiber.StatusBadRequest, "line must be a non-negative integer"), h.logger).Send(ctx)
	}

	var req entity.CheckboxRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, err, h.logger).Send(ctx)
	}

	store := middleware.ClientStore(ctx)
	if err := h.usecase.SetCheckbox(ctx.UserContext(), store, lessonapi.ID(ctx.Params("id")), ctx.Params("tab"), line, *req.Checked); err != nil {
		return response.NewFailed(domain.LESSON_FIELD_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_FIELD_SUCCESS, fiber.Map{"line": line, "checked": *req.Checked}, nil).Send(ctx)
}

// POST /lessons/:id/complete
func (h *lessonHandler) Complete(ctx *fiber.Ctx) error {
	res, err := h.usecase.Complete(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id")))
	if err != nil {
		return response.NewFailed(domain.LESSON_COMPLETE_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LESSON_COMPLETE_SUCCESS, res, nil).Send(ctx)
}
