package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file. A missing file yields no
// lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   string
	Module  string
	Message string
	// Fields holds the trailing key=value pairs as written.
	Fields string
}

// textLine matches the hclog text format:
// 2025-03-10T09:00:00.000Z [INFO]  poller: refreshed: sessions=3
var textLine = regexp.MustCompile(`^(\S+) \[([A-Z]+)\]\s+(.*)$`)

// Parse splits a text or JSON log line. ok is false for continuation lines
// and anything else not written by the logger.
func Parse(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		return parseJSON(trimmed)
	}
	m := textLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	e := Entry{Time: m[1], Level: m[2]}
	rest := m[3]
	// A module name is a single token ending in ": " before the message.
	if idx := strings.Index(rest, ": "); idx > 0 && !strings.ContainsAny(rest[:idx], " =") {
		e.Module = rest[:idx]
		rest = rest[idx+2:]
	}
	if idx := strings.Index(rest, ": "); idx >= 0 && strings.Contains(rest[idx+2:], "=") {
		e.Message, e.Fields = rest[:idx], rest[idx+2:]
	} else {
		e.Message = rest
	}
	return e, true
}

func parseJSON(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	level, ok := raw["@level"].(string)
	if !ok {
		return Entry{}, false
	}
	e := Entry{Level: strings.ToUpper(level)}
	e.Time, _ = raw["@timestamp"].(string)
	e.Module, _ = raw["@module"].(string)
	e.Message, _ = raw["@message"].(string)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		if !strings.HasPrefix(k, "@") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", k, raw[k]))
	}
	e.Fields = strings.Join(fields, " ")
	return e, true
}

// LevelRank orders hclog level names; unknown names rank lowest.
func LevelRank(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return 1
	case "DEBUG":
		return 2
	case "INFO":
		return 3
	case "WARN", "WARNING":
		return 4
	case "ERROR":
		return 5
	default:
		return 0
	}
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	moduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	levelStyles = map[string]lipgloss.Style{
		"TRACE": lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Bold(true),
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Format renders an entry on one line, styled when color is set.
func Format(e Entry, color bool) string {
	level := fmt.Sprintf("[%s]", e.Level)
	ts, module, fields := e.Time, e.Module, e.Fields
	if color {
		if style, ok := levelStyles[e.Level]; ok {
			level = style.Render(level)
		}
		ts = timeStyle.Render(ts)
		if module != "" {
			module = moduleStyle.Render(module)
		}
		if fields != "" {
			fields = fieldStyle.Render(fields)
		}
	}

	var b strings.Builder
	b.WriteString(ts)
	b.WriteString(" ")
	b.WriteString(level)
	b.WriteString(" ")
	if module != "" {
		b.WriteString(module)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if fields != "" {
		b.WriteString(" ")
		b.WriteString(fields)
	}
	return b.String()
}

// Filter keeps lines at or above minLevel. Continuation lines follow the
// entry they belong to.
func Filter(lines []string, minLevel string) []string {
	min := LevelRank(minLevel)
	if min == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	keep := false
	for _, line := range lines {
		if e, ok := Parse(line); ok {
			keep = LevelRank(e.Level) >= min
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}
