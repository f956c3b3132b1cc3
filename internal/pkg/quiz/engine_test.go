package quiz

import (
	"errors"
	"fmt"
	"testing"
)

func TestCheckAnswer_Single(t *testing.T) {
	q := Question{Kind: KindSingle, Options: []string{"a", "b", "c"}, Correct: Answer{Choice: 2}}
	if !CheckAnswer(q, Answer{Choice: 2}) {
		t.Errorf("answer 2 should be correct")
	}
	if CheckAnswer(q, Answer{Choice: 1}) {
		t.Errorf("answer 1 should be wrong")
	}
}

func TestCheckAnswer_TrueFalse(t *testing.T) {
	q := Question{Kind: KindTrueFalse, Correct: Answer{Value: false}}
	if !CheckAnswer(q, Answer{Value: false}) || CheckAnswer(q, Answer{Value: true}) {
		t.Errorf("true/false grading uses exact equality")
	}
}

func TestCheckAnswer_MultiSelect(t *testing.T) {
	q := Question{Kind: KindMultiSelect, Options: []string{"a", "b", "c", "d"}, Correct: Answer{Set: []int{0, 1, 2}}}
	tests := []struct {
		name string
		set  []int
		want bool
	}{
		{name: "missing one", set: []int{0, 1}, want: false},
		{name: "extra one", set: []int{0, 1, 2, 3}, want: false},
		{name: "same size wrong member", set: []int{0, 1, 3}, want: false},
		{name: "exact", set: []int{0, 1, 2}, want: true},
		{name: "exact unordered", set: []int{2, 0, 1}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAnswer(q, Answer{Set: tt.set}); got != tt.want {
				t.Errorf("CheckAnswer(%v) = %v, want %v", tt.set, got, tt.want)
			}
		})
	}
}

// singleQuiz builds n single-choice questions whose correct option is 0.
func singleQuiz(n int) *Quiz {
	q := &Quiz{}
	for i := 0; i < n; i++ {
		q.Questions = append(q.Questions, Question{
			ID:      fmt.Sprint(i),
			Kind:    KindSingle,
			Text:    fmt.Sprintf("Q%d", i),
			Options: []string{"right", "wrong"},
		})
	}
	return q
}

func playThrough(t *testing.T, total, correct int) *Engine {
	t.Helper()
	e := NewEngine(singleQuiz(total))
	for i := 0; i < total; i++ {
		choice := 1
		if i < correct {
			choice = 0
		}
		if err := e.Answer(Answer{Choice: choice}); err != nil {
			t.Fatalf("Answer(%d): %v", i, err)
		}
		if err := e.Next(); err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
	}
	return e
}

func TestEngine_PassBoundary(t *testing.T) {
	tests := []struct {
		total, correct int
		passed         bool
	}{
		{total: 5, correct: 4, passed: true},
		{total: 5, correct: 3, passed: false},
		{total: 7, correct: 5, passed: true},
		{total: 10, correct: 7, passed: true},
		{total: 10, correct: 6, passed: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.correct, tt.total), func(t *testing.T) {
			e := playThrough(t, tt.total, tt.correct)
			if !e.Finished() {
				t.Fatalf("engine not finished after last Next")
			}
			if e.Score() != tt.correct {
				t.Fatalf("Score() = %d, want %d", e.Score(), tt.correct)
			}
			if e.Passed() != tt.passed {
				t.Errorf("Passed() = %v, want %v (ratio %.3f)", e.Passed(), tt.passed, e.Ratio())
			}
		})
	}
}

func TestEngine_Navigation(t *testing.T) {
	e := NewEngine(singleQuiz(3))

	if err := e.Previous(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Previous at start error = %v", err)
	}
	if e.CanNext() {
		t.Fatalf("next must be disabled before answering")
	}
	if err := e.Next(); !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("Next unanswered error = %v", err)
	}
	if err := e.Answer(Answer{Choice: 7}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Answer out of range error = %v", err)
	}
	_ = e.Answer(Answer{Choice: 0})
	if err := e.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if e.Index() != 1 {
		t.Fatalf("Index() = %d", e.Index())
	}
	if err := e.Previous(); err != nil || e.Index() != 0 {
		t.Fatalf("Previous: %v, index %d", err, e.Index())
	}
	if !e.IsAnswered(0) || e.IsAnswered(1) {
		t.Fatalf("answered flags wrong")
	}
	if e.Score() != 0 {
		t.Fatalf("score must not be computed before finishing")
	}
}

func TestEngine_ToggleLocksNonEmpty(t *testing.T) {
	e := NewEngine(&Quiz{Questions: []Question{{
		ID: "m", Kind: KindMultiSelect, Text: "pick", Options: []string{"a", "b", "c"}, Correct: Answer{Set: []int{0, 2}},
	}}})

	if err := e.Answer(Answer{Choice: 0}); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("Answer on multi-select error = %v", err)
	}
	if err := e.Toggle(2); err != nil {
		t.Fatalf("Toggle(2): %v", err)
	}
	if err := e.Toggle(2); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("removing the only selection error = %v", err)
	}
	_ = e.Toggle(0)
	_ = e.Toggle(1)
	if err := e.Toggle(1); err != nil {
		t.Fatalf("Toggle(1) off: %v", err)
	}
	a, _ := e.AnswerFor(0)
	if fmt.Sprint(a.Set) != "[0 2]" {
		t.Fatalf("selection = %v", a.Set)
	}
	if err := e.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !e.Passed() {
		t.Fatalf("exact selection should pass")
	}
	if err := e.Toggle(1); !errors.Is(err, ErrFinished) {
		t.Fatalf("Toggle after finish error = %v", err)
	}
}

func TestEngine_RetakeResets(t *testing.T) {
	e := playThrough(t, 2, 2)
	e.Retake()
	if e.Finished() || e.Score() != 0 || e.Index() != 0 || e.IsAnswered(0) {
		t.Fatalf("Retake left state behind: %+v", e.State())
	}
}

func TestEngine_RestoreClamps(t *testing.T) {
	e := NewEngine(singleQuiz(2))
	e.Restore(State{Index: 9, Attempt: map[string]Answer{"0": {Choice: 0}, "ghost": {Choice: 1}}})
	if e.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", e.Index())
	}
	if _, ok := e.State().Attempt["ghost"]; ok {
		t.Fatalf("unknown question answer kept")
	}
	if !e.IsAnswered(0) {
		t.Fatalf("known answer dropped")
	}
}
