package specfile

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kbukum/wirekit/spec"
)

func decodeJSON(data []byte) (spec.Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return spec.Spec{}, nil
	}
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &FormatError{Format: JSON, Err: err}
	}
	if _, ok := probe.(map[string]any); !ok {
		return nil, formatErrorf(JSON, "top level must be an object")
	}

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if _, err := d.Token(); err != nil {
		return nil, &FormatError{Format: JSON, Err: err}
	}
	s := spec.Spec{}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return nil, &FormatError{Format: JSON, Err: err}
		}
		key, _ := tok.(string)
		v, err := jsonValue(d)
		if err != nil {
			return nil, &FormatError{Format: JSON, Err: err}
		}
		if isComponentKey(key) {
			v = positionalKeys(v)
		}
		s = append(s, spec.Item{Key: key, Value: v})
	}
	return s, nil
}

// jsonValue reads one value, keeping integers as int.
func jsonValue(d *json.Decoder) (any, error) {
	tok, err := d.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			list := []any{}
			for d.More() {
				v, err := jsonValue(d)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := d.Token()
			return list, err
		}
		obj := map[string]any{}
		for d.More() {
			k, err := d.Token()
			if err != nil {
				return nil, err
			}
			v, err := jsonValue(d)
			if err != nil {
				return nil, err
			}
			key, _ := k.(string)
			obj[key] = v
		}
		_, err := d.Token()
		return obj, err
	case json.Number:
		if !strings.ContainsAny(string(t), ".eE") {
			if i, err := t.Int64(); err == nil {
				return int(i), nil
			}
		}
		return t.Float64()
	}
	return tok, nil
}

func encodeJSON(s spec.Spec) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, item := range s {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(item.Key)
		if err != nil {
			return nil, &FormatError{Format: JSON, Err: err}
		}
		val, err := json.Marshal(stringKeys(item.Value))
		if err != nil {
			return nil, &FormatError{Format: JSON, Err: err}
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(val)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, &FormatError{Format: JSON, Err: err}
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
