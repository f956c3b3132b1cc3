package middleware

import (
	"errors"

	"github.com/evandrarf/lessonhub/internal/delivery/http/domain"
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
)

func (m *Middleware) RequireSession() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		_, err := m.Session.Token(ctx.UserContext(), ClientStore(ctx))
		if errors.Is(err, usecase.ErrSignedOut) {
			return response.NewFailed(domain.AUTH_REQUIRED, fiber.NewError(fiber.StatusUnauthorized, err.Error()), m.Log).Send(ctx)
		}
		if err != nil {
			return response.NewFailed(domain.AUTH_SESSION_FAILED, err, m.Log).Send(ctx)
		}
		return ctx.Next()
	}
}

func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		p, err := m.Session.Current(ctx.UserContext(), ClientStore(ctx))
		if err != nil {
			return response.NewFailed(domain.AUTH_SESSION_FAILED, fiber.NewError(fiber.StatusBadGateway, err.Error()), m.Log).Send(ctx)
		}
		if p == nil {
			return response.NewFailed(domain.AUTH_REQUIRED, fiber.NewError(fiber.StatusUnauthorized, usecase.ErrSignedOut.Error()), m.Log).Send(ctx)
		}
		if !p.IsAdmin() {
			return response.NewFailed(domain.AUTH_FORBIDDEN, fiber.NewError(fiber.StatusForbidden, usecase.ErrForbidden.Error()), m.Log).Send(ctx)
		}
		return ctx.Next()
	}
}
