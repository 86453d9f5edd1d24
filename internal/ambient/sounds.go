package ambient

import (
	"strings"

	"github.com/five82/sanctuary/internal/config"
)

// Sound is an ambient catalog entry.
type Sound struct {
	ID   string
	Name string
	URL  string
	Icon string
}

// Label returns the icon and name for menus.
func (s Sound) Label() string {
	if s.Icon == "" {
		return s.Name
	}
	return s.Icon + " " + s.Name
}

var builtinSounds = []Sound{
	{ID: "rain", Name: "Rain", URL: "https://actions.google.com/sounds/v1/weather/rain_on_roof.ogg", Icon: "🌧️"},
	{ID: "coffee-shop", Name: "Coffee Shop", URL: "https://actions.google.com/sounds/v1/ambiences/coffee_shop.ogg", Icon: "☕"},
	{ID: "forest", Name: "Forest", URL: "https://actions.google.com/sounds/v1/ambiences/forest_birds.ogg", Icon: "🌲"},
	{ID: "waves", Name: "Ocean Waves", URL: "https://actions.google.com/sounds/v1/water/waves_crashing_on_rock_beach.ogg", Icon: "🌊"},
	{ID: "white-noise", Name: "White Noise", URL: "https://actions.google.com/sounds/v1/ambiences/ambient_hum_air_conditioner.ogg", Icon: "📻"},
	{ID: "lofi", Name: "Lofi Beats", URL: "https://actions.google.com/sounds/v1/ambiences/soft_jazz_music.ogg", Icon: "🎵"},
}

// DefaultSounds returns a copy of the built-in catalog.
func DefaultSounds() []Sound {
	return append([]Sound(nil), builtinSounds...)
}

// Catalog merges config entries into the built-in catalog. Entries with a
// built-in id replace it in place; new ids are appended in config order.
func Catalog(extra []config.SoundEntry) []Sound {
	sounds := DefaultSounds()
	for _, entry := range extra {
		s := Sound{
			ID:   strings.TrimSpace(entry.ID),
			Name: strings.TrimSpace(entry.Name),
			URL:  expandLocal(strings.TrimSpace(entry.URL)),
			Icon: strings.TrimSpace(entry.Icon),
		}
		if s.ID == "" || s.URL == "" {
			continue
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		replaced := false
		for i := range sounds {
			if sounds[i].ID == s.ID {
				sounds[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			sounds = append(sounds, s)
		}
	}
	return sounds
}

// Find returns the sound with id.
func Find(sounds []Sound, id string) (Sound, bool) {
	for _, s := range sounds {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

func expandLocal(url string) string {
	if !strings.HasPrefix(url, "~") {
		return url
	}
	expanded, err := config.ExpandPath(url)
	if err != nil {
		return url
	}
	return expanded
}
