package usecase

import (
	"context"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

type AdminUsecase interface {
	Stats(ctx context.Context, store storage.Store) (*lessonapi.DashboardStats, error)
	Users(ctx context.Context, store storage.Store) ([]lessonapi.Profile, error)
	UpdateUser(ctx context.Context, store storage.Store, id lessonapi.ID, req entity.AdminUpdateUserRequest) (*lessonapi.Profile, error)
	DeleteUser(ctx context.Context, store storage.Store, id lessonapi.ID) error
}

type AdminConfig struct {
	Service LessonService
	Session SessionUsecase
	Log     *logrus.Logger
}

type adminUsecase struct {
	cfg AdminConfig
}

func NewAdminUsecase(cfg AdminConfig) AdminUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &adminUsecase{cfg: cfg}
}

// token returns the session token of a signed-in admin.
func (u *adminUsecase) token(ctx context.Context, store storage.Store) (string, error) {
	p, err := u.cfg.Session.Current(ctx, store)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrSignedOut
	}
	if !p.IsAdmin() {
		return "", ErrForbidden
	}
	return u.cfg.Session.Token(ctx, store)
}

func (u *adminUsecase) Stats(ctx context.Context, store storage.Store) (*lessonapi.DashboardStats, error) {
	token, err := u.token(ctx, store)
	if err != nil {
		return nil, err
	}
	s, err := u.cfg.Service.AdminStats(ctx, token)
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}
	return &s, nil
}

func (u *adminUsecase) Users(ctx context.Context, store storage.Store) ([]lessonapi.Profile, error) {
	token, err := u.token(ctx, store)
	if err != nil {
		return nil, err
	}
	users, err := u.cfg.Service.AdminUsers(ctx, token)
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}
	return users, nil
}

func (u *adminUsecase) UpdateUser(ctx context.Context, store storage.Store, id lessonapi.ID, req entity.AdminUpdateUserRequest) (*lessonapi.Profile, error) {
	token, err := u.token(ctx, store)
	if err != nil {
		return nil, err
	}
	p, err := u.cfg.Service.UpdateUser(ctx, token, id, lessonapi.UserUpdate{Role: req.Role, IsActive: req.IsActive})
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}
	u.cfg.Log.WithFields(logrus.Fields{"user_id": id, "role": p.Role, "is_active": p.IsActive}).Info("user updated")
	return &p, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, store storage.Store, id lessonapi.ID) error {
	token, err := u.token(ctx, store)
	if err != nil {
		return err
	}
	if err := u.cfg.Service.DeleteUser(ctx, token, id); err != nil {
		return u.cfg.Session.Guard(ctx, store, err)
	}
	u.cfg.Log.WithField("user_id", id).Info("user deleted")
	return nil
}
