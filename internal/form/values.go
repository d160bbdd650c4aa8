package form

import (
	"strconv"
	"strings"
)

// Values abstracts the submitted form fields so collection and validation
// logic can be exercised without any real page. Handlers adapt posted
// url.Values onto it; tests build FormValues directly.
type Values interface {
	Get(name string) string
	List(name string) []string
	Has(name string) bool
}

// FormValues is the canonical Values implementation.
type FormValues map[string][]string

// Get returns the first value bound to name.
func (v FormValues) Get(name string) string {
	if vs, ok := v[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns every value bound to name, in submission order.
func (v FormValues) List(name string) []string {
	return v[name]
}

// Has reports whether the field was submitted at all.
func (v FormValues) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Set binds a single value, replacing any previous binding.
func (v FormValues) Set(name, value string) {
	v[name] = []string{value}
}

// Add appends a value to the field's list.
func (v FormValues) Add(name, value string) {
	v[name] = append(v[name], value)
}

func text(v Values, name string) string {
	return strings.TrimSpace(v.Get(name))
}

// intOr parses a numeric field, falling back to def on anything that is
// not a number. Inputs like "18 semanas" keep their leading digits.
func intOr(v Values, name string, def int) int {
	raw := text(v, name)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if n, ok := leadingInt(raw); ok {
		return n
	}
	return def
}

func intPtr(v Values, name string) *int {
	raw := text(v, name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		var ok bool
		if n, ok = leadingInt(raw); !ok {
			return nil
		}
	}
	return &n
}

func leadingInt(raw string) (int, bool) {
	start := -1
	end := len(raw)
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(raw[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolField(v Values, name string) bool {
	switch strings.ToLower(text(v, name)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// boolFieldOr treats an absent field as def. Checkbox semantics differ
// between "unchecked" and "not rendered", and defaults must win for the
// latter.
func boolFieldOr(v Values, name string, def bool) bool {
	if !v.Has(name) {
		return def
	}
	return boolField(v, name)
}

// textList collects every repeated entry of a list field, trimmed, with
// blank entries removed.
func textList(v Values, name string) []string {
	raw := v.List(name)
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
