package handler

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	AdminHandler interface {
		Stats(ctx *fiber.Ctx) error
		Users(ctx *fiber.Ctx) error
		UpdateUser(ctx *fiber.Ctx) error
		DeleteUser(ctx *fiber.Ctx) error
	}

	adminHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.AdminUsecase
	}
)

func NewAdminHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.AdminUsecase) AdminHandler {
	return &adminHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /admin/stats
func (h *adminHandler) Stats(ctx *fiber.Ctx) error {
	stats, err := h.usecase.Stats(ctx.UserContext(), middleware.ClientStore(ctx))
	if err != nil {
		return response.NewFailed(domain.ADMIN_STATS_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.ADMIN_STATS_SUCCESS, stats, nil).Send(ctx)
}

// GET /admin/users
func (h *adminHandler) Users(ctx *fiber.Ctx) error {
	users, err := h.usecase.Users(ctx.UserContext(), middleware.ClientStore(ctx))
	if err != nil {
		return response.NewFailed(domain.ADMIN_USERS_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.ADMIN_USERS_SUCCESS, users, fiber.Map{"total": len(users)}).Send(ctx)
}

// PATCH /admin/users/:id
func (h *adminHandler) UpdateUser(ctx *fiber.Ctx) error {
	var req entity.AdminUpdateUserRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.ADMIN_USER_UPDATE_FAILED, err, h.logger).Send(ctx)
	}
	if req.Role == nil && req.IsActive == nil {
		return response.NewFailed(domain.ADMIN_USER_UPDATE_FAILED, fiber.NewError(fiber.StatusBadRequest, "role or is_active is required"), h.logger).Send(ctx)
	}

	user, err := h.usecase.UpdateUser(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id")), req)
	if err != nil {
		return response.NewFailed(domain.ADMIN_USER_UPDATE_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.ADMIN_USER_UPDATE_SUCCESS, user, nil).Send(ctx)
}

// DELETE /admin/users/:id
func (h *adminHandler) DeleteUser(ctx *fiber.Ctx) error {
	if err := h.usecase.DeleteUser(ctx.UserContext(), middleware.ClientStore(ctx), lessonapi.ID(ctx.Params("id"))); err != nil {
		return response.NewFailed(domain.ADMIN_USER_DELETE_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.ADMIN_USER_DELETE_SUCCESS, nil, nil).Send(ctx)
}
