package entity

import "github.com/evandrarf/lessonhub/internal/pkg/lessonapi"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *lessonapi.Profile `json:"user,omitempty"`
}
