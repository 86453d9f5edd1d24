package prefs

import (
	"strconv"
	"strings"
)

const (
	// DefaultVolume is used when no ambient volume has been stored.
	DefaultVolume = 50
	// DefaultTheme names the UI theme used before the user picks one.
	DefaultTheme = "Nightfox"
)

// FocusMode reports whether focus mode is enabled.
func FocusMode(s Store) bool {
	value, ok := s.Get(KeyFocusMode)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && enabled
}

// SetFocusMode persists the focus mode flag.
func SetFocusMode(s Store, enabled bool) error {
	return s.Set(KeyFocusMode, strconv.FormatBool(enabled))
}

// Wallpaper returns the selected wallpaper id, or "" when unset.
func Wallpaper(s Store) string {
	value, _ := s.Get(KeyWallpaper)
	return strings.TrimSpace(value)
}

// SetWallpaper persists the selected wallpaper id.
func SetWallpaper(s Store, id string) error {
	return s.Set(KeyWallpaper, strings.TrimSpace(id))
}

// Sound returns the selected ambient sound id, or "" when unset.
func Sound(s Store) string {
	value, _ := s.Get(KeyAmbientSound)
	return strings.TrimSpace(value)
}

// SetSound persists the ambient sound id. An empty id clears the selection.
func SetSound(s Store, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.Delete(KeyAmbientSound)
	}
	return s.Set(KeyAmbientSound, id)
}

// Volume returns the stored ambient volume clamped to 0..100.
func Volume(s Store) int {
	value, ok := s.Get(KeyAmbientVolume)
	if !ok {
		return DefaultVolume
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return DefaultVolume
	}
	return ClampVolume(v)
}

// SetVolume clamps and persists the ambient volume.
func SetVolume(s Store, v int) error {
	return s.Set(KeyAmbientVolume, strconv.Itoa(ClampVolume(v)))
}

// ClampVolume limits v to 0..100.
func ClampVolume(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Theme returns the stored UI theme name.
func Theme(s Store) string {
	value, _ := s.Get(KeyTheme)
	if strings.TrimSpace(value) == "" {
		return DefaultTheme
	}
	return strings.TrimSpace(value)
}

// SetTheme persists the UI theme name.
func SetTheme(s Store, name string) error {
	return s.Set(KeyTheme, strings.TrimSpace(name))
}
