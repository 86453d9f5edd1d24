// Package actortest provides an in-memory actor HTTP server for tests.
package actortest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/sanctuary/internal/actor"
)

// Server keeps actor records in memory and serves the actor HTTP API.
type Server struct {
	mu         sync.Mutex
	sessions   []actor.TimerSession
	presets    []actor.TimerPreset
	goals      []actor.Goal
	wallpapers map[string][]byte
	wpOrder    []string
	failStatus int
	failCount  int
	requestIDs []string
}

// New returns an empty server.
func New() *Server {
	return &Server{wallpapers: make(map[string][]byte)}
}

// Start serves a new Server over httptest and closes it when the test ends.
func Start(t testing.TB) (*Server, *httptest.Server) {
	t.Helper()
	s := New()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

// Handler returns the chi router for the actor API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.recordRequest)
	r.Use(s.injectFailure)

	r.Post("/api/sessions", s.recordSession)
	r.Get("/api/sessions", s.listSessions)
	r.Get("/api/sessions/count", s.sessionCount)
	r.Get("/api/sessions/average", s.averageDuration)

	r.Put("/api/presets/{name}", s.savePreset)
	r.Get("/api/presets", s.listPresets)

	r.Put("/api/goals/{name}", s.setGoal)
	r.Post("/api/goals/{name}/progress", s.goalProgress)
	r.Get("/api/goals", s.listGoals)

	r.Get("/api/wallpapers", s.listWallpapers)
	r.Get("/api/wallpapers/{name}", s.getWallpaper)
	r.Put("/api/wallpapers/{name}", s.uploadWallpaper)
	r.Get("/blobs/{name}", s.serveBlob)

	r.Get("/api/tags", s.listTags)
	return r
}

// FailNext makes the next n requests return status.
func (s *Server) FailNext(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failCount = n
}

// AddSession seeds a session.
func (s *Server) AddSession(session actor.TimerSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.Duration == 0 && session.EndTime > session.StartTime {
		session.Duration = session.EndTime - session.StartTime
	}
	s.sessions = append(s.sessions, session)
}

// Sessions returns a copy of the stored sessions.
func (s *Server) Sessions() []actor.TimerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]actor.TimerSession(nil), s.sessions...)
}

// Presets returns a copy of the stored presets.
func (s *Server) Presets() []actor.TimerPreset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]actor.TimerPreset(nil), s.presets...)
}

// Goals returns a copy of the stored goals.
func (s *Server) Goals() []actor.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]actor.Goal(nil), s.goals...)
}

// WallpaperData returns the uploaded bytes for name.
func (s *Server) WallpaperData(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.wallpapers[name]
	return data, ok
}

// RequestIDs returns the X-Request-Id headers seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-Id"))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := 0
		if s.failCount > 0 {
			s.failCount--
			status = s.failStatus
		}
		s.mu.Unlock()
		if status != 0 {
			respondError(w, "injected failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recordSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime  int64    `json:"startTime"`
		EndTime    int64    `json:"endTime"`
		LabelText  *string  `json:"labelText"`
		ColorTheme *string  `json:"colorTheme"`
		Tags       []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	session := actor.TimerSession{
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Duration:   req.EndTime - req.StartTime,
		LabelText:  "Study Session",
		ColorTheme: "#3b82f6",
		Tags:       []string{},
	}
	if req.LabelText != nil {
		session.LabelText = *req.LabelText
	}
	if req.ColorTheme != nil {
		session.ColorTheme = *req.ColorTheme
	}
	if req.Tags != nil {
		session.Tags = req.Tags
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	label := r.URL.Query().Get("label")

	s.mu.Lock()
	out := make([]actor.TimerSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		if tag != "" && !containsExact(session.Tags, tag) {
			continue
		}
		if label != "" && session.LabelText != label {
			continue
		}
		out = append(out, session)
	}
	s.mu.Unlock()
	respondJSON(w, out, http.StatusOK)
}

func (s *Server) sessionCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := len(s.sessions)
	s.mu.Unlock()
	respondJSON(w, map[string]int{"count": count}, http.StatusOK)
}

func (s *Server) averageDuration(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var total float64
	for _, session := range s.sessions {
		total += float64(session.Duration)
	}
	avg := 0.0
	if len(s.sessions) > 0 {
		avg = total / float64(len(s.sessions))
	}
	s.mu.Unlock()
	respondJSON(w, map[string]float64{"average": avg}, http.StatusOK)
}

func (s *Server) savePreset(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	var req struct {
		Duration   int64  `json:"duration"`
		LabelText  string `json:"labelText"`
		ColorTheme string `json:"colorTheme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Duration <= 0 {
		respondError(w, "duration must be positive", http.StatusBadRequest)
		return
	}
	preset := actor.TimerPreset{Name: name, Duration: req.Duration, LabelText: req.LabelText, ColorTheme: req.ColorTheme}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.presets {
		if s.presets[i].Name == name {
			s.presets[i] = preset
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.presets = append(s.presets, preset)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.Presets(), http.StatusOK)
}

func (s *Server) setGoal(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	var req struct {
		TargetType  actor.GoalType `json:"targetType"`
		TargetHours float64        `json:"targetHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetType != actor.GoalDaily {
		respondError(w, fmt.Sprintf("unknown goal type %q", req.TargetType), http.StatusUnprocessableEntity)
		return
	}
	if req.TargetHours <= 0 {
		respondError(w, "targetHours must be positive", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].Name == name {
			s.goals[i].TargetType = req.TargetType
			s.goals[i].TargetHours = req.TargetHours
			s.goals[i].Achieved = s.goals[i].Progress >= req.TargetHours
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.goals = append(s.goals, actor.Goal{Name: name, TargetType: req.TargetType, TargetHours: req.TargetHours})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) goalProgress(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	var req struct {
		Hours float64 `json:"hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].Name != name {
			continue
		}
		g := &s.goals[i]
		wasAchieved := g.Achieved
		g.Progress += req.Hours
		g.Achieved = g.Progress >= g.TargetHours
		if g.Achieved && !wasAchieved {
			g.Streak++
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondError(w, "goal not found", http.StatusNotFound)
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.Goals(), http.StatusOK)
}

func (s *Server) listWallpapers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := append([]string(nil), s.wpOrder...)
	s.mu.Unlock()

	if r.URL.Query().Get("include") != "url" {
		respondJSON(w, names, http.StatusOK)
		return
	}
	out := make([]actor.WallpaperBlob, 0, len(names))
	for _, name := range names {
		out = append(out, actor.WallpaperBlob{Name: name, URL: blobURL(r, name)})
	}
	respondJSON(w, out, http.StatusOK)
}

func (s *Server) getWallpaper(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if _, ok := s.WallpaperData(name); !ok {
		respondError(w, "wallpaper not found", http.StatusNotFound)
		return
	}
	respondJSON(w, actor.WallpaperBlob{Name: name, URL: blobURL(r, name)}, http.StatusOK)
}

func (s *Server) uploadWallpaper(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, "read body", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		respondError(w, "empty upload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.wallpapers[name]; !exists {
		s.wpOrder = append(s.wpOrder, name)
	}
	s.wallpapers[name] = data
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serveBlob(w http.ResponseWriter, r *http.Request) {
	data, ok := s.WallpaperData(nameParam(r))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := make(map[string]struct{})
	for _, session := range s.sessions {
		for _, tag := range session.Tags {
			seen[tag] = struct{}{}
		}
	}
	s.mu.Unlock()

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	respondJSON(w, tags, http.StatusOK)
}

func blobURL(r *http.Request, name string) string {
	return "http://" + r.Host + "/blobs/" + url.PathEscape(name)
}

// nameParam returns the decoded {name} segment. chi routes on the escaped
// path, so an encoded "/" arrives still escaped.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == want {
			return true
		}
	}
	return false
}

func respondJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
