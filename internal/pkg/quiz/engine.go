package quiz

import (
	"errors"
	"sort"
)

// PassThreshold is the minimum score/total ratio that passes a quiz.
const PassThreshold = 0.70

var (
	ErrNotAnswered    = errors.New("current question has no answer")
	ErrFinished       = errors.New("quiz already finished")
	ErrOutOfBounds    = errors.New("no question in that direction")
	ErrInvalidOption  = errors.New("option out of range")
	ErrWrongKind      = errors.New("answer does not fit question type")
	ErrEmptySelection = errors.New("at least one option must stay selected")
)

// CheckAnswer grades a single response against its question's key.
func CheckAnswer(q Question, a Answer) bool {
	switch q.Kind {
	case KindSingle:
		return a.Choice == q.Correct.Choice
	case KindTrueFalse:
		return a.Value == q.Correct.Value
	case KindMultiSelect:
		if len(a.Set) != len(q.Correct.Set) {
			return false
		}
		picked := make(map[int]bool, len(a.Set))
		for _, n := range a.Set {
			picked[n] = true
		}
		for _, n := range q.Correct.Set {
			if !picked[n] {
				return false
			}
		}
		return true
	}
	return false
}

// State is the mutable part of an Engine, suitable for persisting between requests.
type State struct {
	Index    int               `json:"index"`
	Attempt  map[string]Answer `json:"attempt"`
	Finished bool              `json:"finished"`
	Score    int               `json:"score"`
}

// Engine steps through a quiz, records answers and grades them on finish.
type Engine struct {
	quiz  *Quiz
	state State
}

func NewEngine(q *Quiz) *Engine {
	return &Engine{quiz: q, state: State{Attempt: map[string]Answer{}}}
}

// Restore replaces the engine state, clamping the index into range and
// dropping answers for unknown questions.
func (e *Engine) Restore(st State) {
	known := make(map[string]bool, len(e.quiz.Questions))
	for _, q := range e.quiz.Questions {
		known[q.ID] = true
	}
	attempt := make(map[string]Answer, len(st.Attempt))
	for id, a := range st.Attempt {
		if known[id] {
			attempt[id] = a
		}
	}
	st.Attempt = attempt
	if st.Index < 0 {
		st.Index = 0
	}
	if st.Index >= len(e.quiz.Questions) {
		st.Index = len(e.quiz.Questions) - 1
	}
	e.state = st
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Quiz() *Quiz { return e.quiz }

func (e *Engine) Index() int { return e.state.Index }

func (e *Engine) Total() int { return len(e.quiz.Questions) }

func (e *Engine) Current() Question { return e.quiz.Questions[e.state.Index] }

func (e *Engine) Finished() bool { return e.state.Finished }

// Score is only meaningful once the quiz is finished.
func (e *Engine) Score() int { return e.state.Score }

func (e *Engine) AnswerFor(i int) (Answer, bool) {
	if i < 0 || i >= len(e.quiz.Questions) {
		return Answer{}, false
	}
	a, ok := e.state.Attempt[e.quiz.Questions[i].ID]
	return a, ok
}

func (e *Engine) IsAnswered(i int) bool {
	_, ok := e.AnswerFor(i)
	return ok
}

// CanNext reports whether the "next" control is enabled.
func (e *Engine) CanNext() bool {
	return !e.state.Finished && e.IsAnswered(e.state.Index)
}

// Answer records the response to the current single-choice or true/false question.
func (e *Engine) Answer(a Answer) error {
	if e.state.Finished {
		return ErrFinished
	}
	q := e.Current()
	switch q.Kind {
	case KindSingle:
		if a.Choice < 0 || a.Choice >= len(q.Options) {
			return ErrInvalidOption
		}
		e.state.Attempt[q.ID] = Answer{Choice: a.Choice}
	case KindTrueFalse:
		e.state.Attempt[q.ID] = Answer{Value: a.Value}
	default:
		return ErrWrongKind
	}
	return nil
}

// Toggle flips one option of the current multi-select question. Once an
// option is selected the selection can change but never become empty again.
func (e *Engine) Toggle(option int) error {
	if e.state.Finished {
		return ErrFinished
	}
	q := e.Current()
	if q.Kind != KindMultiSelect {
		return ErrWrongKind
	}
	if option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}

	prev := e.state.Attempt[q.ID].Set
	set := make([]int, 0, len(prev)+1)
	removed := false
	for _, n := range prev {
		if n == option {
			removed = true
			continue
		}
		set = append(set, n)
	}
	if !removed {
		set = append(set, option)
	}
	if len(set) == 0 {
		return ErrEmptySelection
	}
	sort.Ints(set)
	e.state.Attempt[q.ID] = Answer{Set: set}
	return nil
}

// Next advances to the following question; on the last question it grades
// the attempt and moves to the results state.
func (e *Engine) Next() error {
	if e.state.Finished {
		return ErrFinished
	}
	if !e.IsAnswered(e.state.Index) {
		return ErrNotAnswered
	}
	if e.state.Index == len(e.quiz.Questions)-1 {
		e.finish()
		return nil
	}
	e.state.Index++
	return nil
}

func (e *Engine) Previous() error {
	if e.state.Finished {
		return ErrFinished
	}
	if e.state.Index == 0 {
		return ErrOutOfBounds
	}
	e.state.Index--
	return nil
}

func (e *Engine) finish() {
	score := 0
	for _, q := range e.quiz.Questions {
		if a, ok := e.state.Attempt[q.ID]; ok && CheckAnswer(q, a) {
			score++
		}
	}
	e.state.Score = score
	e.state.Finished = true
}

// Ratio is score/total as a float; it is zero until the quiz is finished.
func (e *Engine) Ratio() float64 {
	if len(e.quiz.Questions) == 0 {
		return 0
	}
	return float64(e.state.Score) / float64(len(e.quiz.Questions))
}

func (e *Engine) Passed() bool {
	return e.state.Finished && e.Ratio() >= PassThreshold
}

func (e *Engine) Retake() {
	e.state = State{Attempt: map[string]Answer{}}
}

type Result struct {
	Question Question
	Answer   Answer
	Answered bool
	Correct  bool
}

// Results returns per-question outcomes in quiz order.
func (e *Engine) Results() []Result {
	out := make([]Result, 0, len(e.quiz.Questions))
	for _, q := range e.quiz.Questions {
		a, ok := e.state.Attempt[q.ID]
		out = append(out, Result{Question: q, Answer: a, Answered: ok, Correct: ok && CheckAnswer(q, a)})
	}
	return out
}
