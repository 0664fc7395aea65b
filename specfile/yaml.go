package specfile

import (
	"bytes"
	"errors"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/wirekit/spec"
)

func decodeYAML(data []byte) (spec.Spec, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return spec.Spec{}, nil
		}
		return nil, &FormatError{Format: YAML, Err: err}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, formatErrorf(YAML, "line %d: top level must be a mapping", root.Line)
	}

	s := make(spec.Spec, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, formatErrorf(YAML, "line %d: keys must be scalars", key.Line)
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, &FormatError{Format: YAML, Err: err}
		}
		s = append(s, spec.Item{Key: key.Value, Value: v})
	}
	return s, nil
}

func encodeYAML(s spec.Spec) ([]byte, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range s {
		val := &yaml.Node{}
		if err := val.Encode(item.Value); err != nil {
			return nil, &FormatError{Format: YAML, Err: err}
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item.Key},
			val,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{m}}); err != nil {
		return nil, &FormatError{Format: YAML, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &FormatError{Format: YAML, Err: err}
	}
	return buf.Bytes(), nil
}
