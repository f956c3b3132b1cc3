package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type SessionUsecase interface {
	Authenticate(ctx context.Context, store storage.Store, req entity.LoginRequest) (*lessonapi.Profile, error)
	Register(ctx context.Context, req entity.RegisterRequest) (*lessonapi.Profile, error)
	EndSession(ctx context.Context, store storage.Store) error
	Current(ctx context.Context, store storage.Store) (*lessonapi.Profile, error)
	IsAuthenticated(ctx context.Context, store storage.Store) bool
	Token(ctx context.Context, store storage.Store) (string, error)
	Guard(ctx context.Context, store storage.Store, err error) error
}

type SessionConfig struct {
	Service LessonService
	Log     *logrus.Logger
	Now     func() time.Time
}

type sessionUsecase struct {
	cfg SessionConfig
}

func NewSessionUsecase(cfg SessionConfig) SessionUsecase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &sessionUsecase{cfg: cfg}
}

func (u *sessionUsecase) Authenticate(ctx context.Context, store storage.Store, req entity.LoginRequest) (*lessonapi.Profile, error) {
	sess, err := u.cfg.Service.Login(ctx, lessonapi.Credentials{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, TokenKey, sess.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	profile, err := u.restoreProfile(ctx, store, sess.AccessToken)
	if err != nil {
		u.clear(ctx, store)
		return nil, err
	}

	if err := store.Remove(ctx, ProgressCacheKey); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to drop progress cache after sign in")
	}
	return profile, nil
}

// Register creates the account only; the caller signs in separately.
func (u *sessionUsecase) Register(ctx context.Context, req entity.RegisterRequest) (*lessonapi.Profile, error) {
	p, err := u.cfg.Service.Register(ctx, lessonapi.Registration{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (u *sessionUsecase) EndSession(ctx context.Context, store storage.Store) error {
	u.clear(ctx, store)
	if err := store.Remove(ctx, ProgressCacheKey); err != nil {
		return fmt.Errorf("drop progress cache: %w", err)
	}
	if pr, ok := store.(storage.PrefixRemover); ok {
		if err := pr.RemovePrefix(ctx, quizStatePrefix); err != nil {
			return fmt.Errorf("drop quiz state: %w", err)
		}
	}
	return nil
}

// Current returns the signed-in profile, or nil when signed out.
func (u *sessionUsecase) Current(ctx context.Context, store storage.Store) (*lessonapi.Profile, error) {
	token, err := u.Token(ctx, store)
	if errors.Is(err, ErrSignedOut) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := store.Get(ctx, ProfileKey)
	if err == nil {
		var p lessonapi.Profile
		if json.Unmarshal([]byte(raw), &p) == nil {
			return &p, nil
		}
		u.cfg.Log.Warn("discarding unreadable cached profile")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	p, err := u.restoreProfile(ctx, store, token)
	if errors.Is(err, lessonapi.ErrUnauthorized) {
		return nil, nil
	}
	return p, err
}

func (u *sessionUsecase) IsAuthenticated(ctx context.Context, store storage.Store) bool {
	p, err := u.Current(ctx, store)
	return err == nil && p != nil
}

// Token returns the stored bearer token. A missing or expired token yields
// ErrSignedOut; an expired one is cleared first.
func (u *sessionUsecase) Token(ctx context.Context, store storage.Store) (string, error) {
	token, err := store.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
		return "", ErrSignedOut
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if u.expired(token) {
		u.cfg.Log.Debug("session token expired")
		u.clear(ctx, store)
		return "", ErrSignedOut
	}
	return token, nil
}

// Guard clears the session when err reports an unauthorized call and returns err unchanged.
func (u *sessionUsecase) Guard(ctx context.Context, store storage.Store, err error) error {
	if errors.Is(err, lessonapi.ErrUnauthorized) {
		u.cfg.Log.WithField("scope", storage.Scope(store)).Info("forced sign out")
		u.clear(ctx, store)
	}
	return err
}

// restoreProfile fetches and caches the profile, retrying once on a transient failure.
func (u *sessionUsecase) restoreProfile(ctx context.Context, store storage.Store, token string) (*lessonapi.Profile, error) {
	p, err := u.cfg.Service.Me(ctx, token)
	if lessonapi.IsRetryable(err) {
		u.cfg.Log.WithError(err).Warn("profile fetch failed, retrying once")
		p, err = u.cfg.Service.Me(ctx, token)
	}
	if err != nil {
		return nil, u.Guard(ctx, store, err)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := store.Set(ctx, ProfileKey, string(raw)); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return &p, nil
}

func (u *sessionUsecase) clear(ctx context.Context, store storage.Store) {
	for _, k := range []string{TokenKey, ProfileKey} {
		if err := store.Remove(ctx, k); err != nil {
			u.cfg.Log.WithError(err).WithField("key", k).Warn("failed to clear session key")
		}
	}
}

// expired reads exp without verifying the signature; the remote service
// remains the authority. Opaque tokens never expire here.
func (u *sessionUsecase) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !u.cfg.Now().Before(exp.Time)
}
