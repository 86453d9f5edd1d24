package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/five82/sanctuary/internal/actor"
)

// Format is an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Kind names an exportable record set.
type Kind string

const (
	Sessions Kind = "sessions"
	Presets  Kind = "presets"
	Goals    Kind = "goals"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrUnknownKind   = errors.New("unknown export kind")
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	sessionHeader = []string{"Start Time", "End Time", "Duration (hours)", "Label", "Color", "Tags"}
	presetHeader  = []string{"Label", "Duration (minutes)", "Color"}
	goalHeader    = []string{"Target Type", "Target Hours", "Progress", "Achieved", "Streak"}
)

// ParseFormat accepts csv, json or yaml (and yml), ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseKind accepts sessions, presets or goals.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Sessions, Presets, Goals:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// FileName returns the default file name for kind in format.
func FileName(kind Kind, format Format) string {
	var base string
	switch kind {
	case Presets:
		base = "timer-presets"
	case Goals:
		base = "study-goals"
	default:
		base = "study-sessions"
	}
	return base + "." + string(format)
}

// WriteSessions encodes sessions to w.
func WriteSessions(w io.Writer, format Format, sessions []actor.TimerSession) error {
	if format != CSV {
		return encode(w, format, sessions)
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.Start().UTC().Format(timeLayout),
			s.End().UTC().Format(timeLayout),
			strconv.FormatFloat(s.Hours(), 'f', 2, 64),
			s.LabelText,
			s.ColorTheme,
			strings.Join(s.Tags, "; "),
		})
	}
	return writeCSV(w, sessionHeader, rows)
}

// WritePresets encodes presets to w.
func WritePresets(w io.Writer, format Format, presets []actor.TimerPreset) error {
	if format != CSV {
		return encode(w, format, presets)
	}
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.DisplayName(),
			strconv.FormatFloat(math.Round(p.Length().Minutes()), 'f', 0, 64),
			p.ColorTheme,
		})
	}
	return writeCSV(w, presetHeader, rows)
}

// WriteGoals encodes goals to w.
func WriteGoals(w io.Writer, format Format, goals []actor.Goal) error {
	if format != CSV {
		return encode(w, format, goals)
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			string(g.TargetType),
			strconv.FormatFloat(g.TargetHours, 'f', -1, 64),
			strconv.FormatFloat(g.Progress, 'f', 2, 64),
			strconv.FormatBool(g.Achieved),
			strconv.FormatInt(g.Streak, 10),
		})
	}
	return writeCSV(w, goalHeader, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func encode(w io.Writer, format Format, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ToFile runs write against path, or stdout when path is "" or "-".
// Files are written to a temporary sibling and renamed into place.
func ToFile(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// Stamp suffixes a file name with the date, for repeated exports.
func Stamp(name string, now time.Time) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + now.Format("2006-01-02") + ext
}
