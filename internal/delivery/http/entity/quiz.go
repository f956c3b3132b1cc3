package entity

import (
	"github.com/evandrarf/lessonhub/internal/pkg/lessonapi"
	"github.com/evandrarf/lessonhub/internal/pkg/quiz"
)

type QuestionView struct {
	ID       string    `json:"id"`
	Kind     quiz.Kind `json:"kind"`
	Text     string    `json:"text"`
	Options  []string  `json:"options,omitempty"`
	Answered bool      `json:"answered"`
	// Answer is the learner's current response, never the answer key.
	Answer *quiz.Answer `json:"answer,omitempty"`
}

type QuizResultView struct {
	QuestionID string       `json:"question_id"`
	Text       string       `json:"text"`
	Answer     *quiz.Answer `json:"answer,omitempty"`
	Correct    bool         `json:"correct"`
	Feedback   string       `json:"feedback,omitempty"`
}

// QuizView is the quiz panel. Available is false when the lesson's quiz blob
// is missing or malformed; the other fields are then empty.
type QuizView struct {
	LessonID    lessonapi.ID     `json:"lesson_id"`
	Available   bool             `json:"available"`
	Total       int              `json:"total,omitempty"`
	Index       int              `json:"index"`
	CanNext     bool             `json:"can_next"`
	CanPrevious bool             `json:"can_previous"`
	Finished    bool             `json:"finished"`
	Question    *QuestionView    `json:"question,omitempty"`
	Score       int              `json:"score"`
	Percentage  float64          `json:"percentage"`
	Passed      bool             `json:"passed"`
	Results     []QuizResultView `json:"results,omitempty"`
}

type QuizAnswerRequest struct {
	Choice *int  `json:"choice" validate:"omitempty,min=0"`
	Value  *bool `json:"value"`
}

type QuizToggleRequest struct {
	Option *int `json:"option" validate:"required,min=0"`
}
