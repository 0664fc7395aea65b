package specfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Format names a document format.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
	INI  Format = "ini"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{YAML, JSON, TOML, INI} }

// ParseFormat returns the format called name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case YAML, JSON, TOML, INI:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("specfile: unsupported format %q", name)
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("specfile: cannot infer format of %s", path)
	}
	return ParseFormat(ext)
}

// FormatError reports a document that could not be decoded or encoded.
type FormatError struct {
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return strings.ToUpper(string(e.Format)) + " format error: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

func formatErrorf(f Format, format string, args ...any) *FormatError {
	return &FormatError{Format: f, Err: fmt.Errorf(format, args...)}
}

// isComponentKey reports whether key names a component.
func isComponentKey(key string) bool { return strings.Contains(key, " ") }

// positionalKeys turns decimal keys of an argument map into int keys.
// Maps without decimal keys are returned unchanged.
func positionalKeys(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	found := false
	for k := range m {
		if _, ok := decimal(k); ok {
			found = true
			break
		}
	}
	if !found {
		return v
	}
	out := make(map[any]any, len(m))
	for k, val := range m {
		if i, ok := decimal(k); ok {
			out[i] = val
		} else {
			out[k] = val
		}
	}
	return out
}

func decimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	return i, err == nil
}

// stringKeys rewrites every map in v to string keys for formats without
// non-string keys.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = stringKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[int]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[strconv.Itoa(k)] = stringKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = stringKeys(val)
		}
		return out
	}
	return v
}
