package usecase

import (
	"context"
	"testing"

	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
)

func TestProgress_CachedUntilInvalidated(t *testing.T) {
	fx := newFixture(t)
	fx.svc.progress = lessonapi.Progress{TotalLessons: 4, CompletedLessons: 1, Percentage: 25}
	fx.signIn(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := fx.progress.Get(ctx, fx.store)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if p.Percentage != 25 {
			t.Fatalf("percentage = %v", p.Percentage)
		}
	}
	if n := fx.svc.count("progress"); n != 1 {
		t.Fatalf("fetched %d times, want 1", n)
	}

	fx.svc.progress.Percentage = 50
	if err := fx.progress.Invalidate(ctx, fx.store); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	p, err := fx.progress.Get(ctx, fx.store)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Percentage != 50 {
		t.Fatalf("percentage after invalidate = %v", p.Percentage)
	}
}

func TestProgress_SignedOutIsNone(t *testing.T) {
	fx := newFixture(t)
	p, err := fx.progress.Get(context.Background(), fx.store)
	if err != nil || p != nil {
		t.Fatalf("progress = %+v, %v; want none", p, err)
	}
	if n := fx.svc.count("progress"); n != 0 {
		t.Fatalf("signed-out progress hit the service %d times", n)
	}
}
