package lessonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized = errors.New("lesson api: unauthorized")
	ErrNotFound     = errors.New("lesson api: not found")
	// ErrUnreachable wraps transport failures (DNS, refused connections, timeouts).
	ErrUnreachable = errors.New("lesson api: service unreachable")
)

// StatusError is returned for non-2xx responses that map to no sentinel.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lesson api: status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("lesson api: status %d", e.Code)
}

func (e *StatusError) HTTPStatusCode() int { return e.Code }

// IsRetryable reports whether a failed call may succeed when repeated.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, ErrUnreachable) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusRequestTimeout || se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return false
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        *logrus.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := cfg.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	entry := c.log.WithFields(logrus.Fields{"method": method, "path": path, "took": time.Since(start)})
	if err != nil {
		entry.WithError(err).Warn("lesson api request failed")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var netErr net.Error
		var urlErr *url.Error
		if errors.As(err, &netErr) || errors.As(err, &urlErr) {
			return fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		return err
	}
	defer resp.Body.Close()
	entry.WithField("status", resp.StatusCode).Debug("lesson api request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 300:
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		for _, s := range []string{payload.Message, payload.Error, payload.Detail} {
			if s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &s)
	if err == nil && s.AccessToken == "" {
		err = errors.New("lesson api: login returned no token")
	}
	return s, err
}

func (c *Client) Register(ctx context.Context, reg Registration) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPost, "/auth/register", "", reg, &p)
	return p, err
}

func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &p)
	return p, err
}

func (c *Client) Lessons(ctx context.Context, token string) ([]LessonSummary, error) {
	var ls []LessonSummary
	err := c.do(ctx, http.MethodGet, "/lessons", token, nil, &ls)
	return ls, err
}

func (c *Client) Lesson(ctx context.Context, token string, id ID) (Lesson, error) {
	var l Lesson
	err := c.do(ctx, http.MethodGet, "/lessons/"+url.PathEscape(id.String()), token, nil, &l)
	return l, err
}

// CompleteLesson marks a lesson complete. The call is idempotent.
func (c *Client) CompleteLesson(ctx context.Context, token string, id ID) error {
	return c.do(ctx, http.MethodPost, "/lessons/"+url.PathEscape(id.String())+"/complete", token, nil, nil)
}

func (c *Client) Progress(ctx context.Context, token string) (Progress, error) {
	var p Progress
	err := c.do(ctx, http.MethodGet, "/progress", token, nil, &p)
	return p, err
}

func (c *Client) AdminStats(ctx context.Context, token string) (DashboardStats, error) {
	var s DashboardStats
	err := c.do(ctx, http.MethodGet, "/admin/stats", token, nil, &s)
	return s, err
}

func (c *Client) AdminUsers(ctx context.Context, token string) ([]Profile, error) {
	var users []Profile
	err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &users)
	return users, err
}

func (c *Client) UpdateUser(ctx context.Context, token string, id ID, upd UserUpdate) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id.String()), token, upd, &p)
	return p, err
}

func (c *Client) DeleteUser(ctx context.Context, token string, id ID) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id.String()), token, nil, nil)
}
