package specfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/spec"
)

// Decode reads a specification in format f.
func Decode(f Format, r io.Reader) (spec.Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch f {
	case YAML:
		return decodeYAML(data)
	case JSON:
		return decodeJSON(data)
	case TOML:
		return decodeTOML(data)
	case INI:
		return decodeINI(data)
	}
	return nil, fmt.Errorf("specfile: unsupported format %q", f)
}

// Encode writes s in format f.
func Encode(f Format, w io.Writer, s spec.Spec) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case YAML:
		data, err = encodeYAML(s)
	case JSON:
		data, err = encodeJSON(s)
	case TOML:
		data, err = encodeTOML(s)
	case INI:
		data, err = encodeINI(s)
	default:
		return fmt.Errorf("specfile: unsupported format %q", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns s encoded in format f.
func Marshal(f Format, s spec.Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(f, &buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data in format f.
func Unmarshal(f Format, data []byte) (spec.Spec, error) {
	return Decode(f, bytes.NewReader(data))
}

// Load reads the specification file at path, inferring its format from the
// extension.
func Load(path string) (spec.Spec, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Decode(f, file)
	if err != nil {
		return nil, err
	}
	logger.Get("specfile").Debug("specification loaded", logger.Fields(
		logger.FieldFile, path,
		logger.FieldFormat, string(f),
		logger.FieldCount, len(s),
	))
	return s, nil
}
