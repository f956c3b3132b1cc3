package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

type ProgressUsecase interface {
	Get(ctx context.Context, store storage.Store) (*lessonapi.Progress, error)
	Invalidate(ctx context.Context, store storage.Store) error
}

type ProgressConfig struct {
	Service LessonService
	Session SessionUsecase
	Log     *logrus.Logger
}

type progressUsecase struct {
	cfg ProgressConfig
}

func NewProgressUsecase(cfg ProgressConfig) ProgressUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &progressUsecase{cfg: cfg}
}

// Get returns the progress summary, or nil when signed out.
func (u *progressUsecase) Get(ctx context.Context, store storage.Store) (*lessonapi.Progress, error) {
	token, err := u.cfg.Session.Token(ctx, store)
	if errors.Is(err, ErrSignedOut) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if raw, err := store.Get(ctx, ProgressCacheKey); err == nil {
		var p lessonapi.Progress
		if json.Unmarshal([]byte(raw), &p) == nil {
			return &p, nil
		}
	}

	p, err := u.cfg.Service.Progress(ctx, token)
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	if err := store.Set(ctx, ProgressCacheKey, string(raw)); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to cache progress")
	}
	return &p, nil
}

func (u *progressUsecase) Invalidate(ctx context.Context, store storage.Store) error {
	return store.Remove(ctx, ProgressCacheKey)
}
