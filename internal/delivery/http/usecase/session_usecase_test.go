package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
)

func TestAuthenticate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_ = fx.store.Set(ctx, ProgressCacheKey, `{"total_lessons": 9}`)

	p, err := fx.session.Authenticate(ctx, fx.store, entity.LoginRequest{Email: " ada@example.com ", Password: "secret"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.Name != "Ada" {
		t.Fatalf("profile = %+v", p)
	}
	if tok, _ := fx.store.Get(ctx, TokenKey); tok != fx.svc.token {
		t.Fatalf("token = %q", tok)
	}
	if _, err := fx.store.Get(ctx, ProfileKey); err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
	if _, err := fx.store.Get(ctx, ProgressCacheKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("progress cache should be dropped on sign in")
	}

	// Current is served from the persisted profile.
	cur, err := fx.session.Current(ctx, fx.store)
	if err != nil || cur == nil || cur.ID != "u1" {
		t.Fatalf("current = %+v, %v", cur, err)
	}
	if n := fx.svc.count("me"); n != 1 {
		t.Fatalf("me called %d times, want 1", n)
	}
	if !fx.session.IsAuthenticated(ctx, fx.store) {
		t.Fatal("expected authenticated")
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.session.Authenticate(ctx, fx.store, entity.LoginRequest{Email: "ada@example.com", Password: "nope"})
	if !errors.Is(err, lessonapi.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if fx.session.IsAuthenticated(ctx, fx.store) {
		t.Fatal("should stay signed out")
	}
}

func TestProfileRestore_RetriesOnce(t *testing.T) {
	tests := []struct {
		name    string
		meErrs  []error
		wantErr bool
		wantMe  int
	}{
		{"first try", nil, false, 1},
		{"one transient failure", []error{lessonapi.ErrUnreachable}, false, 2},
		{"two transient failures", []error{lessonapi.ErrUnreachable, &lessonapi.StatusError{Code: 503}}, true, 2},
		{"client error is not retried", []error{&lessonapi.StatusError{Code: 400}}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.svc.meErrs = tt.meErrs
			ctx := context.Background()

			_, err := fx.session.Authenticate(ctx, fx.store, entity.LoginRequest{Email: "ada@example.com", Password: "secret"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if n := fx.svc.count("me"); n != tt.wantMe {
				t.Fatalf("me called %d times, want %d", n, tt.wantMe)
			}
			if tt.wantErr {
				if _, err := fx.store.Get(ctx, TokenKey); !errors.Is(err, storage.ErrNotFound) {
					t.Fatal("token should be cleared after a failed restore")
				}
			}
		})
	}
}

func TestGuard_UnauthorizedClearsSession(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.signIn(t)
	_ = fx.store.Set(ctx, ProfileKey, `{"id":"u1"}`)
	_ = fx.store.Set(ctx, "lesson-1-story-field-0", "draft")

	err := fx.session.Guard(ctx, fx.store, &lessonapi.StatusError{Code: 500})
	if err == nil {
		t.Fatal("guard must return the error")
	}
	if _, err := fx.store.Get(ctx, TokenKey); err != nil {
		t.Fatal("non-auth errors must keep the session")
	}

	err = fx.session.Guard(ctx, fx.store, lessonapi.ErrUnauthorized)
	if !errors.Is(err, lessonapi.ErrUnauthorized) {
		t.Fatalf("guard changed the error: %v", err)
	}
	for _, k := range []string{TokenKey, ProfileKey} {
		if _, err := fx.store.Get(ctx, k); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("%s not cleared", k)
		}
	}
	if v, _ := fx.store.Get(ctx, "lesson-1-story-field-0"); v != "draft" {
		t.Fatal("drafts must survive a forced sign out")
	}
}

func TestCurrent_RevokedTokenSignsOut(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_ = fx.store.Set(ctx, TokenKey, "revoked")

	p, err := fx.session.Current(ctx, fx.store)
	if err != nil || p != nil {
		t.Fatalf("current = %+v, %v; want signed out", p, err)
	}
	if _, err := fx.store.Get(ctx, TokenKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("revoked token should be cleared")
	}
}

func TestToken_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  error
	}{
		{"valid jwt", func(t *testing.T) string { return signedToken(t, now.Add(time.Hour)) }, nil},
		{"expired jwt", func(t *testing.T) string { return signedToken(t, now.Add(-time.Minute)) }, ErrSignedOut},
		{"opaque token", func(t *testing.T) string { return "opaque" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService()
			session := NewSessionUsecase(SessionConfig{Service: svc, Now: func() time.Time { return now }})
			store := storage.NewMemoryStore()
			ctx := context.Background()
			_ = store.Set(ctx, TokenKey, tt.token(t))

			_, err := session.Token(ctx, store)
			if !errors.Is(err, tt.want) && err != tt.want {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want != nil && store.Len() != 0 {
				t.Fatal("expired token should be cleared")
			}
		})
	}
}

func TestEndSession(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.signIn(t)
	_ = fx.store.Set(ctx, ProfileKey, `{"id":"u1"}`)
	_ = fx.store.Set(ctx, ProgressCacheKey, `{}`)
	_ = fx.store.Set(ctx, QuizStateKey("7"), `{}`)
	_ = fx.store.Set(ctx, "lesson-7-story-checkbox-3", "true")

	if err := fx.session.EndSession(ctx, fx.store); err != nil {
		t.Fatalf("end session: %v", err)
	}
	for _, k := range []string{TokenKey, ProfileKey, ProgressCacheKey, QuizStateKey("7")} {
		if _, err := fx.store.Get(ctx, k); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("%s not cleared", k)
		}
	}
	if v, _ := fx.store.Get(ctx, "lesson-7-story-checkbox-3"); v != "true" {
		t.Fatal("checkbox state must survive sign out")
	}
}

func TestRegister_DoesNotSignIn(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	p, err := fx.session.Register(ctx, entity.RegisterRequest{Name: " Grace ", Email: "grace@example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Name != "Grace" {
		t.Fatalf("name = %q", p.Name)
	}
	if fx.session.IsAuthenticated(ctx, fx.store) {
		t.Fatal("register must not create a session")
	}
}
