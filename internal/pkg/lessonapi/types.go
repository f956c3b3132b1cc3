package lessonapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ID accepts both JSON strings and numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// QuizBlob is the quiz text as served by the lesson service. The service may
// send it string-encoded or inline (array, object); both decode to the blob
// text, and any other shape is kept verbatim for the quiz parser to reject.
type QuizBlob string

func (q *QuizBlob) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = QuizBlob(s)
		return nil
	}
	*q = QuizBlob(b)
	return nil
}

func (q QuizBlob) String() string { return string(q) }

type Tab string

const (
	TabStory      Tab = "story"
	TabReflection Tab = "reflection"
	TabChallenge  Tab = "challenge"
	TabQuiz       Tab = "quiz"
)

// TextTabs are the tabs rendered through the interactive content renderer.
var TextTabs = []Tab{TabStory, TabReflection, TabChallenge}

func ParseTab(s string) (Tab, bool) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabStory, TabReflection, TabChallenge, TabQuiz:
		return t, true
	}
	return "", false
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Profile struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (p Profile) IsAdmin() bool { return strings.EqualFold(p.Role, "admin") }

type LessonSummary struct {
	ID     ID     `json:"id"`
	Title  string `json:"title"`
	Course string `json:"course"`
	Order  int    `json:"order"`
}

type Lesson struct {
	ID         ID       `json:"id"`
	Title      string   `json:"title"`
	Course     string   `json:"course"`
	Order      int      `json:"order"`
	Story      string   `json:"story"`
	Reflection string   `json:"reflection"`
	Challenge  string   `json:"challenge"`
	Quiz       QuizBlob `json:"quiz"`
}

// Content returns the raw text for a text tab.
func (l Lesson) Content(tab Tab) (string, bool) {
	switch tab {
	case TabStory:
		return l.Story, true
	case TabReflection:
		return l.Reflection, true
	case TabChallenge:
		return l.Challenge, true
	}
	return "", false
}

type Progress struct {
	TotalLessons       int     `json:"total_lessons"`
	CompletedLessons   int     `json:"completed_lessons"`
	Percentage         float64 `json:"percentage"`
	CompletedLessonIDs []ID    `json:"completed_lesson_ids"`
}

func (p Progress) IsCompleted(id ID) bool {
	for _, c := range p.CompletedLessonIDs {
		if c == id {
			return true
		}
	}
	return false
}

type DashboardStats struct {
	TotalUsers       int     `json:"total_users"`
	ActiveUsers      int     `json:"active_users"`
	TotalLessons     int     `json:"total_lessons"`
	TotalCompletions int     `json:"total_completions"`
	AverageProgress  float64 `json:"average_progress"`
}

type UserUpdate struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
