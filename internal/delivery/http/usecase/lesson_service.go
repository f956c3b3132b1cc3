package usecase

import (
	"context"
	"errors"

	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
)

// LessonService is the remote lesson REST service. *lessonapi.Client implements it.
type LessonService interface {
	Login(ctx context.Context, creds lessonapi.Credentials) (lessonapi.Session, error)
	Register(ctx context.Context, reg lessonapi.Registration) (lessonapi.Profile, error)
	Me(ctx context.Context, token string) (lessonapi.Profile, error)
	Lessons(ctx context.Context, token string) ([]lessonapi.LessonSummary, error)
	Lesson(ctx context.Context, token string, id lessonapi.ID) (lessonapi.Lesson, error)
	CompleteLesson(ctx context.Context, token string, id lessonapi.ID) error
	Progress(ctx context.Context, token string) (lessonapi.Progress, error)
	AdminStats(ctx context.Context, token string) (lessonapi.DashboardStats, error)
	AdminUsers(ctx context.Context, token string) ([]lessonapi.Profile, error)
	UpdateUser(ctx context.Context, token string, id lessonapi.ID, upd lessonapi.UserUpdate) (lessonapi.Profile, error)
	DeleteUser(ctx context.Context, token string, id lessonapi.ID) error
}

var (
	ErrSignedOut    = errors.New("not signed in")
	ErrForbidden    = errors.New("admin role required")
	ErrUnknownTab   = errors.New("unknown lesson tab")
	ErrUnknownField = errors.New("unknown lesson field")
)

// Fixed keys of the per-client store.
const (
	TokenKey         = "auth-token"
	ProfileKey       = "auth-user"
	ProgressCacheKey = "progress-cache"
	quizStatePrefix  = "quiz-state-"
)

func QuizStateKey(lessonID lessonapi.ID) string {
	return quizStatePrefix + "lesson-" + lessonID.String()
}
