package specfile

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/ini.v1"

	"github.com/kbukum/wirekit/spec"
)

// constantsSection holds the constants of an INI document. Keys outside any
// section are constants too.
const constantsSection = "constants"

func iniOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreContinuation:      true,
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}
}

func decodeINI(data []byte) (spec.Spec, error) {
	f, err := ini.LoadSources(iniOptions(), data)
	if err != nil {
		return nil, &FormatError{Format: INI, Err: err}
	}
	s := spec.Spec{}
	for _, sec := range f.Sections() {
		name := sec.Name()
		switch {
		case name == ini.DefaultSection || name == constantsSection:
			for _, k := range sec.Keys() {
				v, err := iniValue(k.Value())
				if err != nil {
					return nil, formatErrorf(INI, "[%s] %s: %v", name, k.Name(), err)
				}
				s = append(s, spec.Item{Key: k.Name(), Value: v})
			}
		case isComponentKey(name):
			args := make(map[string]any, len(sec.Keys()))
			for _, k := range sec.Keys() {
				v, err := iniValue(k.Value())
				if err != nil {
					return nil, formatErrorf(INI, "[%s] %s: %v", name, k.Name(), err)
				}
				args[k.Name()] = v
			}
			s = append(s, spec.Item{Key: name, Value: positionalKeys(args)})
		default:
			return nil, formatErrorf(INI, "section [%s] is neither [%s] nor a component", name, constantsSection)
		}
	}
	return s, nil
}

// iniValue reads one INI value: true and false in any case, null, numbers,
// JSON lists, objects and quoted strings. Anything else is a plain string.
func iniValue(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if n, ok := iniNumber(raw); ok {
		return n, nil
	}
	if raw != "" && strings.ContainsRune(`"[{`, rune(raw[0])) && json.Valid([]byte(raw)) {
		d := json.NewDecoder(strings.NewReader(raw))
		d.UseNumber()
		return jsonValue(d)
	}
	return raw, nil
}

func iniNumber(raw string) (any, bool) {
	if raw == "" {
		return nil, false
	}
	if c := raw[0]; c != '-' && c != '+' && (c < '0' || c > '9') {
		return nil, false
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	return nil, false
}

// iniText writes v so that iniValue reads it back. Strings that would read
// as another type are written as JSON strings.
func iniText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return "", formatErrorf(INI, "%v cannot be represented", t)
		}
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s, nil
	case string:
		back, err := iniValue(t)
		if str, ok := back.(string); ok && err == nil && str == t &&
			strings.TrimSpace(t) == t && !strings.ContainsAny(t, "\r\n`") {
			return t, nil
		}
	}
	b, err := json.Marshal(stringKeys(v))
	if err != nil {
		return "", &FormatError{Format: INI, Err: err}
	}
	return string(b), nil
}

// iniArgs flattens the value of a component into section keys: positional
// indexes in order, then keyword names sorted.
func iniArgs(v any) (keys []string, values map[string]any) {
	values = map[string]any{}
	switch t := v.(type) {
	case nil:
	case []any:
		for i, item := range t {
			values[strconv.Itoa(i)] = item
		}
	case map[string]any, map[any]any, map[int]any:
		for k, item := range stringKeysShallow(t) {
			values[k] = item
		}
	default:
		values["0"] = t
	}
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aPos := decimal(keys[i])
		b, bPos := decimal(keys[j])
		switch {
		case aPos && bPos:
			return a < b
		case aPos != bPos:
			return aPos
		}
		return keys[i] < keys[j]
	})
	return keys, values
}

// stringKeysShallow rewrites the top-level keys of an argument map to
// strings, leaving nested values to iniText.
func stringKeysShallow(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = item
		}
		return out
	case map[int]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[strconv.Itoa(k)] = item
		}
		return out
	}
	return nil
}

func encodeINI(s spec.Spec) ([]byte, error) {
	f := ini.Empty(iniOptions())
	var consts *ini.Section
	for _, item := range s {
		if isComponentKey(item.Key) {
			continue
		}
		if consts == nil {
			sec, err := f.NewSection(constantsSection)
			if err != nil {
				return nil, &FormatError{Format: INI, Err: err}
			}
			consts = sec
		}
		text, err := iniText(item.Value)
		if err != nil {
			return nil, err
		}
		if _, err := consts.NewKey(item.Key, text); err != nil {
			return nil, formatErrorf(INI, "%s: %v", item.Key, err)
		}
	}
	for _, item := range s {
		if !isComponentKey(item.Key) {
			continue
		}
		sec, err := f.NewSection(item.Key)
		if err != nil {
			return nil, &FormatError{Format: INI, Err: err}
		}
		keys, values := iniArgs(item.Value)
		for _, k := range keys {
			text, err := iniText(values[k])
			if err != nil {
				return nil, err
			}
			if _, err := sec.NewKey(k, text); err != nil {
				return nil, formatErrorf(INI, "%s: %s: %v", item.Key, k, err)
			}
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, &FormatError{Format: INI, Err: err}
	}
	return buf.Bytes(), nil
}
