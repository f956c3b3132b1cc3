package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/quiz"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

type QuizUsecase interface {
	View(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error)
	Answer(ctx context.Context, store storage.Store, id lessonapi.ID, req entity.QuizAnswerRequest) (*entity.QuizView, error)
	Toggle(ctx context.Context, store storage.Store, id lessonapi.ID, option int) (*entity.QuizView, error)
	Next(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error)
	Previous(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error)
	Retake(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error)
}

type QuizConfig struct {
	Service LessonService
	Session SessionUsecase
	Log     *logrus.Logger
}

type quizUsecase struct {
	cfg QuizConfig
}

func NewQuizUsecase(cfg QuizConfig) QuizUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &quizUsecase{cfg: cfg}
}

func (u *quizUsecase) View(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, nil)
}

func (u *quizUsecase) Answer(ctx context.Context, store storage.Store, id lessonapi.ID, req entity.QuizAnswerRequest) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, func(e *quiz.Engine) error {
		if e.Finished() {
			return quiz.ErrFinished
		}
		var a quiz.Answer
		switch e.Current().Kind {
		case quiz.KindSingle:
			if req.Choice == nil {
				return quiz.ErrInvalidOption
			}
			a.Choice = *req.Choice
		case quiz.KindTrueFalse:
			if req.Value == nil {
				return quiz.ErrInvalidOption
			}
			a.Value = *req.Value
		}
		return e.Answer(a)
	})
}

func (u *quizUsecase) Toggle(ctx context.Context, store storage.Store, id lessonapi.ID, option int) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, func(e *quiz.Engine) error {
		return e.Toggle(option)
	})
}

func (u *quizUsecase) Next(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, func(e *quiz.Engine) error {
		return e.Next()
	})
}

func (u *quizUsecase) Previous(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, func(e *quiz.Engine) error {
		return e.Previous()
	})
}

func (u *quizUsecase) Retake(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.QuizView, error) {
	return u.mutate(ctx, store, id, func(e *quiz.Engine) error {
		e.Retake()
		return nil
	})
}

// mutate loads the engine for a lesson, applies fn and persists the new
// state. A lesson whose quiz cannot be parsed yields an unavailable view.
// Concurrent calls for the same client and lesson are last-write-wins.
func (u *quizUsecase) mutate(ctx context.Context, store storage.Store, id lessonapi.ID, fn func(*quiz.Engine) error) (*entity.QuizView, error) {
	token, err := u.cfg.Session.Token(ctx, store)
	if err != nil {
		return nil, err
	}
	lesson, err := u.cfg.Service.Lesson(ctx, token, id)
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}

	q, err := quiz.Parse(lesson.Quiz.String())
	if errors.Is(err, quiz.ErrUnavailable) {
		u.cfg.Log.WithError(err).WithField("lesson_id", id).Debug("quiz not available")
		return &entity.QuizView{LessonID: id, Available: false}, nil
	}
	if err != nil {
		return nil, err
	}

	e := quiz.NewEngine(q)
	key := QuizStateKey(id)
	if raw, err := store.Get(ctx, key); err == nil {
		var st quiz.State
		if json.Unmarshal([]byte(raw), &st) == nil {
			e.Restore(st)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load quiz state: %w", err)
	}

	if fn != nil {
		if err := fn(e); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(e.State())
		if err != nil {
			return nil, fmt.Errorf("encode quiz state: %w", err)
		}
		if err := store.Set(ctx, key, string(raw)); err != nil {
			return nil, fmt.Errorf("save quiz state: %w", err)
		}
	}

	return quizView(id, e), nil
}

func quizView(id lessonapi.ID, e *quiz.Engine) *entity.QuizView {
	v := &entity.QuizView{
		LessonID:    id,
		Available:   true,
		Total:       e.Total(),
		Index:       e.Index(),
		CanNext:     e.CanNext(),
		CanPrevious: !e.Finished() && e.Index() > 0,
		Finished:    e.Finished(),
	}

	if !e.Finished() {
		q := e.Current()
		qv := &entity.QuestionView{ID: q.ID, Kind: q.Kind, Text: q.Text, Options: q.Options}
		if a, ok := e.AnswerFor(e.Index()); ok {
			qv.Answered = true
			qv.Answer = &a
		}
		if q.Kind == quiz.KindTrueFalse && len(qv.Options) == 0 {
			qv.Options = []string{"True", "False"}
		}
		v.Question = qv
		return v
	}

	v.Score = e.Score()
	v.Percentage = math.Round(e.Ratio()*1000) / 10
	v.Passed = e.Passed()
	for _, r := range e.Results() {
		rv := entity.QuizResultView{
			QuestionID: r.Question.ID,
			Text:       r.Question.Text,
			Correct:    r.Correct,
			Feedback:   r.Question.Feedback,
		}
		if r.Answered {
			a := r.Answer
			rv.Answer = &a
		}
		v.Results = append(v.Results, rv)
	}
	return v
}
