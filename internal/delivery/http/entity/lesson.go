package entity

import (
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/markup"
)

type LessonListItem struct {
	ID        lessonapi.ID `json:"id"`
	Title     string       `json:"title"`
	Course    string       `json:"course,omitempty"`
	Order     int          `json:"order"`
	Completed bool         `json:"completed"`
}

type LessonView struct {
	ID        lessonapi.ID        `json:"id"`
	Title     string              `json:"title"`
	Course    string              `json:"course,omitempty"`
	Completed bool                `json:"completed"`
	Tabs      []string            `json:"tabs"`
	Progress  *lessonapi.Progress `json:"progress,omitempty"`
}

type BlankState struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CheckboxState struct {
	Line    int    `json:"line"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// TabView is one rendered lesson tab plus the state bound to its inputs.
type TabView struct {
	LessonID   lessonapi.ID    `json:"lesson_id"`
	Tab        string          `json:"tab"`
	Variant    markup.Variant  `json:"variant"`
	HTML       string          `json:"html"`
	Blanks     []BlankState    `json:"blanks"`
	Checkboxes []CheckboxState `json:"checkboxes"`
}

type BlankRequest struct {
	Value string `json:"value" validate:"max=2000"`
}

type CheckboxRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type CompleteResponse struct {
	LessonID lessonapi.ID        `json:"lesson_id"`
	Progress *lessonapi.Progress `json:"progress,omitempty"`
}
