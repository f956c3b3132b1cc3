package middleware

import (
	"github.com/evandrarf/lessonhub/internal/delivery/http/usecase"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log     *logrus.Logger
	Config  *viper.Viper
	Store   storage.Store
	Session usecase.SessionUsecase
}

type Middleware struct {
	Log     *logrus.Logger
	Config  *viper.Viper
	Store   storage.Store
	Session usecase.SessionUsecase
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{}
	}

	return &Middleware{
		Log:     c.Log,
		Config:  c.Config,
		Store:   c.Store,
		Session: c.Session,
	}
}
