package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeService is an in-process LessonService.
type fakeService struct {
	mu sync.Mutex

	token    string
	profile  lessonapi.Profile
	lessons  map[lessonapi.ID]lessonapi.Lesson
	progress lessonapi.Progress
	users    []lessonapi.Profile

	// meErrs are returned by successive Me calls before succeeding.
	meErrs []error
	// failWith is returned by every authorized call when set.
	failWith error

	calls map[string]int
}

func newFakeService() *fakeService {
	return &fakeService{
		token:   "opaque-token",
		profile: lessonapi.Profile{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "student", IsActive: true},
		lessons: map[lessonapi.ID]lessonapi.Lesson{},
		calls:   map[string]int{},
	}
}

func (f *fakeService) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeService) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.failWith
}

func (f *fakeService) Login(_ context.Context, creds lessonapi.Credentials) (lessonapi.Session, error) {
	f.hit("login")
	if creds.Password != "secret" {
		return lessonapi.Session{}, lessonapi.ErrUnauthorized
	}
	return lessonapi.Session{AccessToken: f.token, TokenType: "bearer"}, nil
}

func (f *fakeService) Register(_ context.Context, reg lessonapi.Registration) (lessonapi.Profile, error) {
	f.hit("register")
	return lessonapi.Profile{ID: "u2", Name: reg.Name, Email: reg.Email, Role: "student", IsActive: true}, nil
}

func (f *fakeService) Me(_ context.Context, token string) (lessonapi.Profile, error) {
	if err := f.hit("me"); err != nil {
		return lessonapi.Profile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.meErrs) > 0 {
		err := f.meErrs[0]
		f.meErrs = f.meErrs[1:]
		return lessonapi.Profile{}, err
	}
	if token != f.token {
		return lessonapi.Profile{}, lessonapi.ErrUnauthorized
	}
	return f.profile, nil
}

func (f *fakeService) Lessons(_ context.Context, _ string) ([]lessonapi.LessonSummary, error) {
	if err := f.hit("lessons"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]lessonapi.LessonSummary, 0, len(f.lessons))
	for _, l := range f.lessons {
		out = append(out, lessonapi.LessonSummary{ID: l.ID, Title: l.Title, Order: l.Order})
	}
	return out, nil
}

func (f *fakeService) Lesson(_ context.Context, _ string, id lessonapi.ID) (lessonapi.Lesson, error) {
	if err := f.hit("lesson"); err != nil {
		return lessonapi.Lesson{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lessons[id]
	if !ok {
		return lessonapi.Lesson{}, lessonapi.ErrNotFound
	}
	return l, nil
}

func (f *fakeService) CompleteLesson(_ context.Context, _ string, id lessonapi.ID) error {
	if err := f.hit("complete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.progress.IsCompleted(id) {
		f.progress.CompletedLessonIDs = append(f.progress.CompletedLessonIDs, id)
		f.progress.CompletedLessons++
	}
	return nil
}

func (f *fakeService) Progress(_ context.Context, _ string) (lessonapi.Progress, error) {
	if err := f.hit("progress"); err != nil {
		return lessonapi.Progress{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.progress
	p.CompletedLessonIDs = append([]lessonapi.ID(nil), f.progress.CompletedLessonIDs...)
	return p, nil
}

func (f *fakeService) AdminStats(_ context.Context, _ string) (lessonapi.DashboardStats, error) {
	if err := f.hit("stats"); err != nil {
		return lessonapi.DashboardStats{}, err
	}
	return lessonapi.DashboardStats{TotalUsers: len(f.users), ActiveUsers: len(f.users)}, nil
}

func (f *fakeService) AdminUsers(_ context.Context, _ string) ([]lessonapi.Profile, error) {
	if err := f.hit("users"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeService) UpdateUser(_ context.Context, _ string, id lessonapi.ID, upd lessonapi.UserUpdate) (lessonapi.Profile, error) {
	if err := f.hit("update"); err != nil {
		return lessonapi.Profile{}, err
	}
	p := lessonapi.Profile{ID: id, Role: "student", IsActive: true}
	if upd.Role != nil {
		p.Role = *upd.Role
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	return p, nil
}

func (f *fakeService) DeleteUser(_ context.Context, _ string, _ lessonapi.ID) error {
	return f.hit("delete")
}

type fixture struct {
	svc      *fakeService
	store    storage.Store
	log      *logrus.Logger
	hook     *test.Hook
	session  SessionUsecase
	progress ProgressUsecase
	lesson   LessonUsecase
	quiz     QuizUsecase
	admin    AdminUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	svc := newFakeService()

	session := NewSessionUsecase(SessionConfig{Service: svc, Log: log})
	progress := NewProgressUsecase(ProgressConfig{Service: svc, Session: session, Log: log})
	return &fixture{
		svc:      svc,
		store:    storage.Scoped(storage.NewMemoryStore(), "client-1"),
		log:      log,
		hook:     hook,
		session:  session,
		progress: progress,
		lesson:   NewLessonUsecase(LessonConfig{Service: svc, Session: session, Progress: progress, Log: log}),
		quiz:     NewQuizUsecase(QuizConfig{Service: svc, Session: session, Log: log}),
		admin:    NewAdminUsecase(AdminConfig{Service: svc, Session: session, Log: log}),
	}
}

// signIn stores the fake token the way Authenticate does.
func (fx *fixture) signIn(t *testing.T) {
	t.Helper()
	if err := fx.store.Set(context.Background(), TokenKey, fx.svc.token); err != nil {
		t.Fatalf("set token: %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
