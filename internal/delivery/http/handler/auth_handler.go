package handler

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/delivery/http/middleware"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	AuthHandler interface {
		Login(ctx *fiber.Ctx) error
		Register(ctx *fiber.Ctx) error
		Logout(ctx *fiber.Ctx) error
		Session(ctx *fiber.Ctx) error
	}

	authHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.SessionUsecase
	}
)

func NewAuthHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.SessionUsecase) AuthHandler {
	return &authHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /auth/login
func (h *authHandler) Login(ctx *fiber.Ctx) error {
	var req entity.LoginRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.AUTH_LOGIN_FAILED, err, h.logger).Send(ctx)
	}

	profile, err := h.usecase.Authenticate(ctx.UserContext(), middleware.ClientStore(ctx), req)
	if err != nil {
		return response.NewFailed(domain.AUTH_LOGIN_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.AUTH_LOGIN_SUCCESS, entity.SessionResponse{Authenticated: true, User: profile}, nil).Send(ctx)
}

// POST /auth/register
func (h *authHandler) Register(ctx *fiber.Ctx) error {
	var req entity.RegisterRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.AUTH_REGISTER_FAILED, err, h.logger).Send(ctx)
	}

	profile, err := h.usecase.Register(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.AUTH_REGISTER_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.AUTH_REGISTER_SUCCESS, profile, nil).WithStatus(fiber.StatusCreated).Send(ctx)
}

// POST /auth/logout
func (h *authHandler) Logout(ctx *fiber.Ctx) error {
	if err := h.usecase.EndSession(ctx.UserContext(), middleware.ClientStore(ctx)); err != nil {
		return response.NewFailed(domain.AUTH_LOGOUT_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.AUTH_LOGOUT_SUCCESS, entity.SessionResponse{Authenticated: false}, nil).Send(ctx)
}

// GET /auth/session
func (h *authHandler) Session(ctx *fiber.Ctx) error {
	profile, err := h.usecase.Current(ctx.UserContext(), middleware.ClientStore(ctx))
	if err != nil {
		return response.NewFailed(domain.AUTH_SESSION_FAILED, httpError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.AUTH_SESSION_SUCCESS, entity.SessionResponse{Authenticated: profile != nil, User: profile}, nil).Send(ctx)
}
