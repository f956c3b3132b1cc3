package handler

import (
	"context"
	"errors"

	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/quiz"
	"github.com/evandrarf/lessonhub/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
)

// httpError maps use case and remote service errors onto a status code.
func httpError(err error) error {
	var fields *validate.FieldsError
	var fiberErr *fiber.Error
	var statusErr *lessonapi.StatusError

	switch {
	case errors.As(err, &fields), errors.As(err, &fiberErr):
		return err
	case errors.Is(err, usecase.ErrSignedOut), errors.Is(err, lessonapi.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, lessonapi.ErrNotFound), errors.Is(err, usecase.ErrUnknownTab), errors.Is(err, usecase.ErrUnknownField):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrInvalidOption), errors.Is(err, quiz.ErrWrongKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrNotAnswered), errors.Is(err, quiz.ErrFinished),
		errors.Is(err, quiz.ErrOutOfBounds), errors.Is(err, quiz.ErrEmptySelection):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, lessonapi.ErrUnreachable), errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.As(err, &statusErr):
		if statusErr.Code >= 400 && statusErr.Code < 500 {
			return fiber.NewError(statusErr.Code, statusErr.Message)
		}
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return err
}
