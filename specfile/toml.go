package specfile

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/kbukum/wirekit/spec"
)

func decodeTOML(data []byte) (spec.Spec, error) {
	m := map[string]any{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &FormatError{Format: TOML, Err: err}
	}
	for k, v := range m {
		v = tomlValue(v)
		if isComponentKey(k) {
			v = positionalKeys(v)
		}
		m[k] = v
	}
	return spec.FromMap(m), nil
}

// tomlValue narrows TOML integers to int.
func tomlValue(v any) any {
	switch t := v.(type) {
	case int64:
		return int(t)
	case []any:
		for i, item := range t {
			t[i] = tomlValue(item)
		}
		return t
	case map[string]any:
		for k, item := range t {
			t[k] = tomlValue(item)
		}
		return t
	}
	return v
}

func encodeTOML(s spec.Spec) ([]byte, error) {
	m := make(map[string]any, len(s))
	for _, item := range s {
		if item.Value == nil {
			return nil, formatErrorf(TOML, "%s: null values cannot be represented", item.Key)
		}
		m[item.Key] = stringKeys(item.Value)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, &FormatError{Format: TOML, Err: err}
	}
	return buf.Bytes(), nil
}
