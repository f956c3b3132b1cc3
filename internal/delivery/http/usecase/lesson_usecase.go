package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/evandrarf/lessonhub/internal/delivery/http/entity"
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/markup"
	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LessonUsecase interface {
	List(ctx context.Context, store storage.Store) ([]entity.LessonListItem, error)
	View(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.LessonView, error)
	RenderTab(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, variant markup.Variant) (*entity.TabView, error)
	SetBlank(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, n int, value string) error
	SetCheckbox(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, line int, checked bool) error
	Complete(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.CompleteResponse, error)
}

type LessonConfig struct {
	Service  LessonService
	Session  SessionUsecase
	Progress ProgressUsecase
	Renderer *markup.Renderer
	Log      *logrus.Logger
}

type lessonUsecase struct {
	cfg LessonConfig
}

func NewLessonUsecase(cfg LessonConfig) LessonUsecase {
	if cfg.Renderer == nil {
		cfg.Renderer = markup.NewRenderer()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &lessonUsecase{cfg: cfg}
}

// List returns the lessons in order, annotated with completion.
func (u *lessonUsecase) List(ctx context.Context, store storage.Store) ([]entity.LessonListItem, error) {
	token, err := u.cfg.Session.Token(ctx, store)
	if err != nil {
		return nil, err
	}

	var (
		lessons  []lessonapi.LessonSummary
		progress *lessonapi.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lessons, err = u.cfg.Service.Lessons(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = u.cfg.Progress.Get(gctx, store)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}

	items := make([]entity.LessonListItem, 0, len(lessons))
	for _, l := range lessons {
		items = append(items, entity.LessonListItem{
			ID:        l.ID,
			Title:     l.Title,
			Course:    l.Course,
			Order:     l.Order,
			Completed: progress != nil && progress.IsCompleted(l.ID),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

// View fetches the lesson and the progress summary concurrently.
func (u *lessonUsecase) View(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.LessonView, error) {
	token, err := u.cfg.Session.Token(ctx, store)
	if err != nil {
		return nil, err
	}

	var (
		lesson   lessonapi.Lesson
		progress *lessonapi.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lesson, err = u.cfg.Service.Lesson(gctx, token, id)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = u.cfg.Progress.Get(gctx, store)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}

	view := &entity.LessonView{
		ID:        lesson.ID,
		Title:     lesson.Title,
		Course:    lesson.Course,
		Completed: progress != nil && progress.IsCompleted(lesson.ID),
		Progress:  progress,
	}
	for _, tab := range lessonapi.TextTabs {
		if body, _ := lesson.Content(tab); strings.TrimSpace(body) != "" {
			view.Tabs = append(view.Tabs, string(tab))
		}
	}
	view.Tabs = append(view.Tabs, string(lessonapi.TabQuiz))
	return view, nil
}

func (u *lessonUsecase) RenderTab(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, variant markup.Variant) (*entity.TabView, error) {
	doc, err := u.document(ctx, store, id, tab)
	if err != nil {
		return nil, err
	}

	html, st, err := u.cfg.Renderer.HTML(ctx, store, doc, variant)
	if err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", id, tab, err)
	}

	view := &entity.TabView{
		LessonID:   id,
		Tab:        doc.Tab,
		Variant:    variant,
		HTML:       html,
		Blanks:     make([]entity.BlankState, 0, len(doc.Blanks())),
		Checkboxes: make([]entity.CheckboxState, 0, len(doc.Checkboxes())),
	}
	for _, b := range doc.Blanks() {
		view.Blanks = append(view.Blanks, entity.BlankState{Index: b.Index, Key: b.Key, Value: st.Blanks[b.Index]})
	}
	for _, c := range doc.Checkboxes() {
		view.Checkboxes = append(view.Checkboxes, entity.CheckboxState{
			Line:    c.Line,
			Key:     c.Key,
			Label:   markup.PlainText(c.Label),
			Checked: st.Checked[c.Line],
		})
	}
	return view, nil
}

func (u *lessonUsecase) SetBlank(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, n int, value string) error {
	doc, err := u.document(ctx, store, id, tab)
	if err != nil {
		return err
	}
	if !doc.HasBlank(n) {
		return fmt.Errorf("%w: blank %d", ErrUnknownField, n)
	}
	return u.cfg.Renderer.SetBlank(ctx, store, doc.LessonID, doc.Tab, n, value)
}

func (u *lessonUsecase) SetCheckbox(ctx context.Context, store storage.Store, id lessonapi.ID, tab string, line int, checked bool) error {
	doc, err := u.document(ctx, store, id, tab)
	if err != nil {
		return err
	}
	if !doc.HasCheckbox(line) {
		return fmt.Errorf("%w: checkbox on line %d", ErrUnknownField, line)
	}
	return u.cfg.Renderer.SetCheckbox(ctx, store, doc.LessonID, doc.Tab, line, checked)
}

// Complete marks the lesson done and returns the refreshed progress.
func (u *lessonUsecase) Complete(ctx context.Context, store storage.Store, id lessonapi.ID) (*entity.CompleteResponse, error) {
	token, err := u.cfg.Session.Token(ctx, store)
	if err != nil {
		return nil, err
	}
	if err := u.cfg.Service.CompleteLesson(ctx, token, id); err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}
	if err := u.cfg.Progress.Invalidate(ctx, store); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to invalidate progress cache")
	}

	progress, err := u.cfg.Progress.Get(ctx, store)
	if err != nil {
		return nil, err
	}
	return &entity.CompleteResponse{LessonID: id, Progress: progress}, nil
}

func (u *lessonUsecase) document(ctx context.Context, store storage.Store, id lessonapi.ID, tab string) (*markup.Document, error) {
	t, ok := lessonapi.ParseTab(tab)
	if !ok || t == lessonapi.TabQuiz {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}

	token, err := u.cfg.Session.Token(ctx, store)
	if err != nil {
		return nil, err
	}
	lesson, err := u.cfg.Service.Lesson(ctx, token, id)
	if err != nil {
		return nil, u.cfg.Session.Guard(ctx, store, err)
	}

	body, _ := lesson.Content(t)
	return markup.Parse(id.String(), string(t), body), nil
}
