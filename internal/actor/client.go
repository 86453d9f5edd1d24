package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Actor defines the remote record store Sanctuary talks to.
// This interface is implemented by *Client and can be used for testing.
type Actor interface {
	RecordSession(ctx context.Context, draft SessionDraft) error
	ExportSessions(ctx context.Context) ([]TimerSession, error)
	SessionsByTag(ctx context.Context, tag string) ([]TimerSession, error)
	SessionsByLabel(ctx context.Context, label string) ([]TimerSession, error)
	SessionCount(ctx context.Context) (int64, error)
	AverageSessionDuration(ctx context.Context) (time.Duration, error)

	SavePreset(ctx context.Context, name string, preset TimerPreset) error
	Presets(ctx context.Context) ([]TimerPreset, error)

	SetGoal(ctx context.Context, name string, targetType GoalType, targetHours float64) error
	UpdateGoalProgress(ctx context.Context, name string, hours float64) error
	Goals(ctx context.Context) ([]Goal, error)

	ListWallpapers(ctx context.Context) ([]string, error)
	Wallpapers(ctx context.Context) ([]WallpaperBlob, error)
	Wallpaper(ctx context.Context, name string) (WallpaperBlob, error)
	UploadWallpaper(ctx context.Context, name string, body io.Reader, size int64, progress func(percent int)) error

	Tags(ctx context.Context) ([]string, error)
}

// Ensure Client implements Actor at compile time.
var _ Actor = (*Client)(nil)

// Client talks to the actor HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind        = "127.0.0.1:4943"
	defaultUserAgent      = "sanctuary/0.1"
	defaultRequestTimeout = 5 * time.Second
	maxErrorBody          = 4096
)

// NewClient builds a Client using the provided apiBind host:port value.
// A non-positive timeout uses the default.
func NewClient(apiBind string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized actor address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RecordSession stores a completed session. Empty label, color and tags are
// sent as null so the actor applies its own defaults.
func (c *Client) RecordSession(ctx context.Context, draft SessionDraft) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	req := recordSessionRequest{
		StartTime: ToWire(draft.Start),
		EndTime:   ToWire(draft.End),
	}
	if label := strings.TrimSpace(draft.Label); label != "" {
		req.LabelText = &label
	}
	if color := strings.TrimSpace(draft.Color); color != "" {
		req.ColorTheme = &color
	}
	if len(draft.Tags) > 0 {
		req.Tags = draft.Tags
	}
	return c.sendJSON(ctx, http.MethodPost, &url.URL{Path: "/api/sessions"}, req, nil)
}

// ExportSessions returns every recorded session.
func (c *Client) ExportSessions(ctx context.Context) ([]TimerSession, error) {
	return c.fetchSessions(ctx, nil)
}

// SessionsByTag returns sessions carrying tag.
func (c *Client) SessionsByTag(ctx context.Context, tag string) ([]TimerSession, error) {
	return c.fetchSessions(ctx, url.Values{"tag": {tag}})
}

// SessionsByLabel returns sessions with the given label.
func (c *Client) SessionsByLabel(ctx context.Context, label string) ([]TimerSession, error) {
	return c.fetchSessions(ctx, url.Values{"label": {label}})
}

func (c *Client) fetchSessions(ctx context.Context, query url.Values) ([]TimerSession, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/sessions", RawQuery: query.Encode()}
	var payload []TimerSession
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SessionCount returns the number of recorded sessions.
func (c *Client) SessionCount(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload countResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions/count", &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// AverageSessionDuration returns the mean session length.
func (c *Client) AverageSessionDuration(ctx context.Context) (time.Duration, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload averageResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions/average", &payload); err != nil {
		return 0, err
	}
	return time.Duration(payload.Average), nil
}

// SavePreset creates or replaces the preset stored under name.
func (c *Client) SavePreset(ctx context.Context, name string, preset TimerPreset) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := namedPath("/api/presets/", name)
	if err != nil {
		return err
	}
	req := savePresetRequest{
		Duration:   preset.Duration,
		LabelText:  preset.LabelText,
		ColorTheme: preset.ColorTheme,
	}
	return c.sendJSON(ctx, http.MethodPut, rel, req, nil)
}

// Presets returns every saved preset.
func (c *Client) Presets(ctx context.Context) ([]TimerPreset, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []TimerPreset
	if err := c.do(ctx, http.MethodGet, "/api/presets", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SetGoal creates or replaces the goal stored under name.
func (c *Client) SetGoal(ctx context.Context, name string, targetType GoalType, targetHours float64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := namedPath("/api/goals/", name)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, http.MethodPut, rel, setGoalRequest{TargetType: targetType, TargetHours: targetHours}, nil)
}

// UpdateGoalProgress adds hours to the named goal.
func (c *Client) UpdateGoalProgress(ctx context.Context, name string, hours float64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := namedPath("/api/goals/", name)
	if err != nil {
		return err
	}
	rel.Path += "/progress"
	return c.sendJSON(ctx, http.MethodPost, rel, goalProgressRequest{Hours: hours}, nil)
}

// Goals returns every goal.
func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Goal
	if err := c.do(ctx, http.MethodGet, "/api/goals", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListWallpapers returns custom wallpaper names.
func (c *Client) ListWallpapers(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/api/wallpapers", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Wallpapers returns custom wallpapers with their URLs.
func (c *Client) Wallpapers(ctx context.Context) ([]WallpaperBlob, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/wallpapers", RawQuery: url.Values{"include": {"url"}}.Encode()}
	var payload []WallpaperBlob
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Wallpaper returns a single custom wallpaper. A missing wallpaper yields an
// error matching ErrNotFound.
func (c *Client) Wallpaper(ctx context.Context, name string) (WallpaperBlob, error) {
	if c == nil {
		return WallpaperBlob{}, fmt.Errorf("client is nil")
	}
	rel, err := namedPath("/api/wallpapers/", name)
	if err != nil {
		return WallpaperBlob{}, err
	}
	var payload WallpaperBlob
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return WallpaperBlob{}, err
	}
	return payload, nil
}

// UploadWallpaper streams body to the actor. progress, when non-nil, receives
// whole percentages as bytes are sent and a final 100 on success.
func (c *Client) UploadWallpaper(ctx context.Context, name string, body io.Reader, size int64, progress func(percent int)) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := namedPath("/api/wallpapers/", name)
	if err != nil {
		return err
	}
	if body == nil {
		return &Error{Kind: KindValidation, Op: "PUT " + rel.Path, Message: "empty upload"}
	}
	reader := body
	var tracked *progressReader
	if progress != nil && size > 0 {
		tracked = &progressReader{r: body, total: size, report: progress, last: -1}
		reader = tracked
	}
	if err := c.send(ctx, http.MethodPut, rel, reader, size, "application/octet-stream", nil); err != nil {
		return err
	}
	if progress != nil && (tracked == nil || tracked.last != 100) {
		progress(100)
	}
	return nil
}

// Tags returns every tag seen across sessions.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/api/tags", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func namedPath(prefix, name string) (*url.URL, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, &Error{Kind: KindValidation, Op: prefix, Message: "name required"}
	}
	// RawPath keeps a "/" inside the name from splitting the route.
	return &url.URL{Path: prefix + trimmed, RawPath: prefix + url.PathEscape(trimmed)}, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, nil, "", dest)
}

func (c *Client) sendJSON(ctx context.Context, method string, rel *url.URL, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.send(ctx, method, rel, bytes.NewReader(body), int64(len(body)), "application/json", dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	return c.send(ctx, method, rel, body, -1, contentType, dest)
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body io.Reader, size int64, contentType string, dest any) error {
	op := method + " " + rel.Path
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil && size >= 0 {
		req.ContentLength = size
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Op:      op,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body, resp.StatusCode),
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func readErrorMessage(body io.Reader, status int) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	var payload errorResponse
	if json.Unmarshal(raw, &payload) == nil && strings.TrimSpace(payload.Error) != "" {
		return strings.TrimSpace(payload.Error)
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("returned status %d", status)
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
