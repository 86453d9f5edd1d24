package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/prefs"
)

const (
	CategoryAnime  = "anime"
	CategoryGhibli = "ghibli"
	CategoryStudy  = "study"
	CategoryCustom = "custom"

	customPrefix = "custom-"
)

var (
	ErrUnknown     = errors.New("unknown wallpaper")
	ErrUnsupported = errors.New("unsupported wallpaper file")
)

// Wallpaper is a selectable background.
type Wallpaper struct {
	ID       string
	Name     string
	Category string
	URL      string
	// Accent tints the interface while the wallpaper is selected.
	Accent string
}

// Custom reports whether the wallpaper was uploaded by the user.
func (w Wallpaper) Custom() bool {
	return w.Category == CategoryCustom
}

var builtins = []Wallpaper{
	{ID: "anime-study-1", Name: "Anime Study Room", Category: CategoryAnime, URL: "/assets/generated/anime-study-1.dim_1920x1080.png", Accent: "#c4a7e7"},
	{ID: "anime-library-1", Name: "Anime Library", Category: CategoryAnime, URL: "/assets/generated/anime-library-1.dim_1920x1080.png", Accent: "#9ccfd8"},
	{ID: "ghibli-landscape-1", Name: "Ghibli Landscape", Category: CategoryGhibli, URL: "/assets/generated/ghibli-landscape-1.dim_1920x1080.png", Accent: "#81b29a"},
	{ID: "ghibli-cafe-1", Name: "Ghibli Cafe", Category: CategoryGhibli, URL: "/assets/generated/ghibli-cafe-1.dim_1920x1080.png", Accent: "#f4a261"},
	{ID: "study-room-1", Name: "Cozy Study Room", Category: CategoryStudy, URL: "/assets/generated/study-room-1.dim_1920x1080.png", Accent: "#dbc074"},
	{ID: "study-desk-1", Name: "Study Desk", Category: CategoryStudy, URL: "/assets/generated/study-desk-1.dim_1920x1080.png", Accent: "#719cd6"},
}

const customAccent = "#ea6962"

// Builtins returns a copy of the built-in catalog.
func Builtins() []Wallpaper {
	return append([]Wallpaper(nil), builtins...)
}

// CustomID returns the catalog id for an uploaded wallpaper name.
func CustomID(name string) string {
	return customPrefix + name
}

// Merge appends the actor's custom wallpapers to the built-in catalog.
func Merge(custom []actor.WallpaperBlob) []Wallpaper {
	all := Builtins()
	for _, blob := range custom {
		if blob.Name == "" {
			continue
		}
		all = append(all, Wallpaper{
			ID:       CustomID(blob.Name),
			Name:     blob.Name,
			Category: CategoryCustom,
			URL:      blob.URL,
			Accent:   customAccent,
		})
	}
	return all
}

// Find returns the wallpaper with id.
func Find(all []Wallpaper, id string) (Wallpaper, bool) {
	for _, w := range all {
		if w.ID == id {
			return w, true
		}
	}
	return Wallpaper{}, false
}

// Current resolves the persisted selection, falling back to the first
// built-in when nothing valid is stored.
func Current(store prefs.Store, all []Wallpaper) Wallpaper {
	if w, ok := Find(all, prefs.Wallpaper(store)); ok {
		return w
	}
	return builtins[0]
}

// Select persists id after checking it exists in all.
func Select(store prefs.Store, all []Wallpaper, id string) (Wallpaper, error) {
	w, ok := Find(all, strings.TrimSpace(id))
	if !ok {
		return Wallpaper{}, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	if err := prefs.SetWallpaper(store, w.ID); err != nil {
		return Wallpaper{}, fmt.Errorf("save wallpaper: %w", err)
	}
	return w, nil
}

var allowedExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true,
	".mp4": true, ".webm": true,
}

// NameFor derives an upload name from a file path: the lower-cased base
// name with runs of other characters collapsed to '-'. Names that reduce to
// nothing use the upload time.
func NameFor(path string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		return "wallpaper-" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	return name
}

// Upload sends the file at path to the actor under name and returns the
// catalog id. progress receives whole percentages.
func Upload(ctx context.Context, client actor.Actor, path, name string, progress func(int)) (string, error) {
	if !allowedExt[strings.ToLower(filepath.Ext(path))] {
		return "", fmt.Errorf("%w: %s (want an image, mp4 or webm)", ErrUnsupported, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open wallpaper: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat wallpaper: %w", err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrUnsupported, filepath.Base(path))
	}
	if err := client.UploadWallpaper(ctx, name, f, info.Size(), progress); err != nil {
		return "", fmt.Errorf("upload wallpaper: %w", err)
	}
	return CustomID(name), nil
}
