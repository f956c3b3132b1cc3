package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/markup"
	"github.com/evandrarf/lessonhub/internal/pkg/quiz"
)

const quizBlob = `{"questions": [
	{"id": "q1", "type": "single", "question": "Capital of France?", "options": ["Rome", "Paris"], "correct": 1, "feedback": "Paris."},
	{"id": "q2", "text": "The sky is green.", "correct_answer": false},
	{"id": "q3", "type": "multi_select", "question": "Primes?", "options": ["2", "3", "4"], "correct": [0, 1]}
]}`

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func TestQuiz_Unavailable(t *testing.T) {
	for _, blob := range []string{"", "not json", `{"questions": []}`} {
		t.Run(blob, func(t *testing.T) {
			fx := newFixture(t)
			fx.svc.lessons["1"] = lessonapi.Lesson{ID: "1", Quiz: lessonapi.QuizBlob(blob)}
			fx.signIn(t)

			v, err := fx.quiz.View(context.Background(), fx.store, "1")
			if err != nil {
				t.Fatalf("malformed quiz must not fail: %v", err)
			}
			if v.Available {
				t.Fatal("expected unavailable quiz")
			}

			v, err = fx.quiz.Next(context.Background(), fx.store, "1")
			if err != nil || v.Available {
				t.Fatalf("next on unavailable quiz = %+v, %v", v, err)
			}
		})
	}
}

func TestQuiz_InlineBlobShapes(t *testing.T) {
	tests := []struct {
		name      string
		quiz      string
		available bool
	}{
		{name: "inline array", quiz: `[{"id": "q1", "type": "true_false", "question": "Water is wet.", "correct_answer": true}]`, available: true},
		{name: "empty object", quiz: `{}`},
		{name: "number", quiz: `42`},
		{name: "bool", quiz: `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lesson lessonapi.Lesson
			raw := `{"id": 1, "story": "Tide at _____ o'clock.", "quiz": ` + tt.quiz + `}`
			if err := json.Unmarshal([]byte(raw), &lesson); err != nil {
				t.Fatalf("decode lesson: %v", err)
			}

			fx := newFixture(t)
			fx.svc.lessons["1"] = lesson
			fx.signIn(t)
			ctx := context.Background()

			tab, err := fx.lesson.RenderTab(ctx, fx.store, "1", "story", markup.VariantMinimal)
			if err != nil {
				t.Fatalf("render story: %v", err)
			}
			if !strings.Contains(tab.HTML, "Tide at") || len(tab.Blanks) != 1 {
				t.Fatalf("story view = %+v", tab)
			}

			v, err := fx.quiz.View(ctx, fx.store, "1")
			if err != nil {
				t.Fatalf("quiz view: %v", err)
			}
			if v.Available != tt.available {
				t.Fatalf("available = %v, want %v", v.Available, tt.available)
			}
		})
	}
}

func TestQuiz_ConcurrentAnswersLastWriteWins(t *testing.T) {
	fx := newFixture(t)
	fx.svc.lessons["1"] = lessonapi.Lesson{ID: "1", Quiz: quizBlob}
	fx.signIn(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(choice int) {
			defer wg.Done()
			if _, err := fx.quiz.Answer(ctx, fx.store, "1", entity.QuizAnswerRequest{Choice: intPtr(choice)}); err != nil {
				errs <- err
			}
		}(i % 2)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent answer: %v", err)
	}

	v, err := fx.quiz.View(ctx, fx.store, "1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Index != 0 || v.Question == nil || !v.Question.Answered || v.Question.Answer == nil {
		t.Fatalf("stored state = %+v", v)
	}
	if c := v.Question.Answer.Choice; c != 0 && c != 1 {
		t.Fatalf("stored choice = %d", c)
	}
}

func TestQuiz_FullAttempt(t *testing.T) {
	fx := newFixture(t)
	fx.svc.lessons["1"] = lessonapi.Lesson{ID: "1", Quiz: quizBlob}
	fx.signIn(t)
	ctx := context.Background()

	v, err := fx.quiz.View(ctx, fx.store, "1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !v.Available || v.Total != 3 || v.CanNext || v.Question.ID != "q1" {
		t.Fatalf("initial view = %+v", v)
	}

	if _, err := fx.quiz.Next(ctx, fx.store, "1"); !errors.Is(err, quiz.ErrNotAnswered) {
		t.Fatalf("expected ErrNotAnswered, got %v", err)
	}
	if _, err := fx.quiz.Answer(ctx, fx.store, "1", entity.QuizAnswerRequest{Value: boolPtr(true)}); !errors.Is(err, quiz.ErrInvalidOption) {
		t.Fatalf("single choice needs a choice, got %v", err)
	}

	steps := []func() (*entity.QuizView, error){
		func() (*entity.QuizView, error) {
			return fx.quiz.Answer(ctx, fx.store, "1", entity.QuizAnswerRequest{Choice: intPtr(1)})
		},
		func() (*entity.QuizView, error) { return fx.quiz.Next(ctx, fx.store, "1") },
		func() (*entity.QuizView, error) {
			return fx.quiz.Answer(ctx, fx.store, "1", entity.QuizAnswerRequest{Value: boolPtr(false)})
		},
		func() (*entity.QuizView, error) { return fx.quiz.Next(ctx, fx.store, "1") },
		func() (*entity.QuizView, error) { return fx.quiz.Toggle(ctx, fx.store, "1", 0) },
	}
	for i, step := range steps {
		if v, err = step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if v.Index != 2 || !v.CanPrevious || !v.Question.Answered {
		t.Fatalf("before finishing = %+v", v)
	}

	v, err = fx.quiz.Next(ctx, fx.store, "1")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !v.Finished || v.Score != 2 || v.Passed {
		t.Fatalf("result = %+v", v)
	}
	if v.Percentage != 66.7 {
		t.Fatalf("percentage = %v", v.Percentage)
	}
	if len(v.Results) != 3 || !v.Results[0].Correct || v.Results[2].Correct || v.Results[0].Feedback != "Paris." {
		t.Fatalf("results = %+v", v.Results)
	}

	v, err = fx.quiz.Retake(ctx, fx.store, "1")
	if err != nil {
		t.Fatalf("retake: %v", err)
	}
	if v.Finished || v.Index != 0 || v.Question.Answered {
		t.Fatalf("after retake = %+v", v)
	}
}

func TestQuiz_StatePerClient(t *testing.T) {
	fx := newFixture(t)
	fx.svc.lessons["1"] = lessonapi.Lesson{ID: "1", Quiz: quizBlob}
	fx.signIn(t)
	ctx := context.Background()

	if _, err := fx.quiz.Answer(ctx, fx.store, "1", entity.QuizAnswerRequest{Choice: intPtr(0)}); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := fx.store.Get(ctx, QuizStateKey("1")); err != nil {
		t.Fatalf("state not persisted: %v", err)
	}

	v, err := fx.quiz.View(ctx, fx.store, "1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !v.Question.Answered || v.Question.Answer.Choice != 0 || !v.CanNext {
		t.Fatalf("answer not restored: %+v", v.Question)
	}
}
