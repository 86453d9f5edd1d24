package prefs

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoToken is returned when the redirect fragment carries no access token.
var ErrNoToken = errors.New("no access token in fragment")

// SpotifyToken is an implicit-grant access token with its expiry.
type SpotifyToken struct {
	AccessToken string
	Expiry      time.Time
}

// Valid reports whether the token is present and unexpired at now.
func (t SpotifyToken) Valid(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.Expiry)
}

// ParseSpotifyFragment extracts access_token and expires_in (seconds) from an
// implicit-grant redirect. It accepts a full URL, a "#..." fragment or the
// bare fragment.
func ParseSpotifyFragment(raw string, now time.Time) (SpotifyToken, error) {
	fragment := strings.TrimSpace(raw)
	if idx := strings.Index(fragment, "#"); idx >= 0 {
		fragment = fragment[idx+1:]
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return SpotifyToken{}, fmt.Errorf("parse fragment: %w", err)
	}
	token := strings.TrimSpace(values.Get("access_token"))
	if token == "" {
		return SpotifyToken{}, ErrNoToken
	}
	expiresIn, err := strconv.Atoi(strings.TrimSpace(values.Get("expires_in")))
	if err != nil || expiresIn <= 0 {
		return SpotifyToken{}, fmt.Errorf("parse fragment: invalid expires_in %q", values.Get("expires_in"))
	}
	return SpotifyToken{
		AccessToken: token,
		Expiry:      now.Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

// SaveSpotifyToken stores the token and its expiry in milliseconds since the epoch.
func SaveSpotifyToken(s Store, token SpotifyToken) error {
	if err := s.Set(KeySpotifyToken, token.AccessToken); err != nil {
		return err
	}
	return s.Set(KeySpotifyTokenExpiry, strconv.FormatInt(token.Expiry.UnixMilli(), 10))
}

// LoadSpotifyToken returns the stored token. ok is false when no token is
// stored or the expiry is unreadable.
func LoadSpotifyToken(s Store) (SpotifyToken, bool) {
	token, ok := s.Get(KeySpotifyToken)
	if !ok || strings.TrimSpace(token) == "" {
		return SpotifyToken{}, false
	}
	rawExpiry, ok := s.Get(KeySpotifyTokenExpiry)
	if !ok {
		return SpotifyToken{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(rawExpiry), 10, 64)
	if err != nil {
		return SpotifyToken{}, false
	}
	return SpotifyToken{AccessToken: token, Expiry: time.UnixMilli(ms)}, true
}

// SpotifyConnected reports whether a stored token is still valid at now.
func SpotifyConnected(s Store, now time.Time) bool {
	token, ok := LoadSpotifyToken(s)
	return ok && token.Valid(now)
}

// ClearSpotifyToken removes both token keys.
func ClearSpotifyToken(s Store) error {
	if err := s.Delete(KeySpotifyToken); err != nil {
		return err
	}
	return s.Delete(KeySpotifyTokenExpiry)
}
