package timer

import "strings"

// Tags is an ordered set of session tags.
type Tags struct {
	items []string
}

// Add trims tag and appends it unless empty or already present.
func (t *Tags) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, existing := range t.items {
		if existing == tag {
			return false
		}
	}
	t.items = append(t.items, tag)
	return true
}

// Remove drops tag if present.
func (t *Tags) Remove(tag string) {
	out := t.items[:0]
	for _, existing := range t.items {
		if existing != tag {
			out = append(out, existing)
		}
	}
	t.items = out
}

// Pop removes and returns the most recent tag.
func (t *Tags) Pop() (string, bool) {
	if len(t.items) == 0 {
		return "", false
	}
	last := t.items[len(t.items)-1]
	t.items = t.items[:len(t.items)-1]
	return last, true
}

// Clear removes every tag.
func (t *Tags) Clear() {
	t.items = nil
}

// List returns a copy of the tags, or nil when empty.
func (t *Tags) List() []string {
	if len(t.items) == 0 {
		return nil
	}
	return append([]string(nil), t.items...)
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.items)
}

// Suggestions filters known tags containing input (case-insensitive),
// excluding tags already selected. Empty input yields nothing.
func Suggestions(known []string, input string, selected []string) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}
	taken := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		taken[s] = struct{}{}
	}
	var out []string
	for _, tag := range known {
		if _, ok := taken[tag]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(tag), needle) {
			out = append(out, tag)
		}
	}
	return out
}
