package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnavailable is returned for a missing, empty or malformed quiz blob.
var ErrUnavailable = errors.New("quiz not available")

type Kind string

const (
	KindSingle      Kind = "single"
	KindTrueFalse   Kind = "true_false"
	KindMultiSelect Kind = "multi_select"
)

var kindAliases = map[string]Kind{
	"single":          KindSingle,
	"single_choice":   KindSingle,
	"single-choice":   KindSingle,
	"multiple_choice": KindSingle,
	"mcq":             KindSingle,
	"true_false":      KindTrueFalse,
	"true-false":      KindTrueFalse,
	"truefalse":       KindTrueFalse,
	"boolean":         KindTrueFalse,
	"multi_select":    KindMultiSelect,
	"multi-select":    KindMultiSelect,
	"multiple_select": KindMultiSelect,
	"multiple-select": KindMultiSelect,
	"multi":           KindMultiSelect,
	"checkbox":        KindMultiSelect,
}

// Answer holds a response or an answer key. Only the field matching the
// question kind is meaningful.
type Answer struct {
	Choice int   `json:"choice"`
	Value  bool  `json:"value"`
	Set    []int `json:"set,omitempty"`
}

type Question struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text"`
	Options  []string `json:"options,omitempty"`
	Correct  Answer   `json:"-"`
	Feedback string   `json:"feedback,omitempty"`
}

type Quiz struct {
	Questions []Question
}

// rawQuestion accepts both the current and the legacy field names.
type rawQuestion struct {
	ID            json.RawMessage `json:"id"`
	Type          string          `json:"type"`
	Question      string          `json:"question"`
	Text          string          `json:"text"`
	Options       []string        `json:"options"`
	Correct       json.RawMessage `json:"correct"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	Feedback      string          `json:"feedback"`
	Explanation   string          `json:"explanation"`
}

// Parse decodes a serialized quiz. The blob may be a JSON array of questions,
// an object with a "questions" array, or either of those encoded as a JSON string.
func Parse(blob string) (*Quiz, error) {
	return parse(blob, true)
}

func parse(blob string, allowString bool) (*Quiz, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" || blob == "null" {
		return nil, ErrUnavailable
	}

	var raws []rawQuestion
	switch blob[0] {
	case '[':
		if err := json.Unmarshal([]byte(blob), &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	case '{':
		var wrapper struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(blob), &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		raws = wrapper.Questions
	case '"':
		var inner string
		if !allowString || json.Unmarshal([]byte(blob), &inner) != nil {
			return nil, fmt.Errorf("%w: unexpected string blob", ErrUnavailable)
		}
		return parse(inner, false)
	default:
		return nil, fmt.Errorf("%w: unexpected leading %q", ErrUnavailable, blob[0])
	}

	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrUnavailable)
	}

	q := &Quiz{Questions: make([]Question, 0, len(raws))}
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		nq, err := normalize(i, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrUnavailable, i, err)
		}
		if seen[nq.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrUnavailable, nq.ID)
		}
		seen[nq.ID] = true
		q.Questions = append(q.Questions, nq)
	}
	return q, nil
}

func normalize(pos int, raw rawQuestion) (Question, error) {
	q := Question{
		ID:       rawID(raw.ID, pos),
		Text:     firstNonEmpty(raw.Question, raw.Text),
		Options:  raw.Options,
		Feedback: firstNonEmpty(raw.Feedback, raw.Explanation),
	}
	if q.Text == "" {
		return q, errors.New("missing question text")
	}

	correct := raw.Correct
	if len(correct) == 0 || string(correct) == "null" {
		correct = raw.CorrectAnswer
	}
	if len(correct) == 0 || string(correct) == "null" {
		return q, errors.New("missing correct answer")
	}

	kind, err := resolveKind(raw.Type, q.Options, correct)
	if err != nil {
		return q, err
	}
	q.Kind = kind

	switch kind {
	case KindSingle:
		n, err := decodeIndex(correct)
		if err != nil {
			return q, err
		}
		if n < 0 || n >= len(q.Options) {
			return q, fmt.Errorf("correct index %d out of range", n)
		}
		q.Correct.Choice = n
	case KindTrueFalse:
		v, err := decodeBool(correct, q.Options)
		if err != nil {
			return q, err
		}
		q.Correct.Value = v
	case KindMultiSelect:
		set, err := decodeSet(correct)
		if err != nil {
			return q, err
		}
		for _, n := range set {
			if n < 0 || n >= len(q.Options) {
				return q, fmt.Errorf("correct index %d out of range", n)
			}
		}
		q.Correct.Set = set
	}
	return q, nil
}

func resolveKind(typ string, options []string, correct json.RawMessage) (Kind, error) {
	if typ != "" {
		k, ok := kindAliases[strings.ToLower(strings.TrimSpace(typ))]
		if !ok {
			return "", fmt.Errorf("unknown question type %q", typ)
		}
		return k, nil
	}
	if len(options) > 0 {
		return KindSingle, nil
	}
	var b bool
	if json.Unmarshal(correct, &b) == nil {
		return KindTrueFalse, nil
	}
	return "", errors.New("cannot infer question type")
}

func rawID(raw json.RawMessage, pos int) string {
	if len(raw) == 0 || string(raw) == "null" {
		return strconv.Itoa(pos)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if s == "" {
			return strconv.Itoa(pos)
		}
		return s
	}
	return string(raw)
}

func decodeIndex(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("invalid choice %s", raw)
}

func decodeBool(raw json.RawMessage, options []string) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return v, nil
		}
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n >= 0 && n < len(options) {
		return strings.EqualFold(strings.TrimSpace(options[n]), "true"), nil
	}
	return false, fmt.Errorf("invalid true/false answer %s", raw)
}

func decodeSet(raw json.RawMessage) ([]int, error) {
	var set []int
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("invalid answer set %s", raw)
	}
	return normalizeSet(set), nil
}

func normalizeSet(set []int) []int {
	seen := make(map[int]bool, len(set))
	out := make([]int, 0, len(set))
	for _, n := range set {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
