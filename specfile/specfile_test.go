package specfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/wirekit/spec"
)

func roundTrip(t *testing.T, f Format, s spec.Spec) spec.Spec {
	t.Helper()
	data, err := Marshal(f, s)
	if err != nil {
		t.Fatalf("Marshal(%s): %v", f, err)
	}
	out, err := Unmarshal(f, data)
	if err != nil {
		t.Fatalf("Unmarshal(%s): %v\n%s", f, err, data)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		spec spec.Spec
	}{
		{"simple", spec.Spec{
			{Key: "datetime.datetime now", Value: map[string]any{"year": "{now_year}"}},
			{Key: "now_year", Value: 2025},
		}},
		{"constants", spec.Spec{
			{Key: "datetime.datetime now", Value: map[string]any{}},
			{Key: "str_const", Value: "hello"},
			{Key: "int_const", Value: 42},
			{Key: "float_const", Value: 3.14},
			{Key: "bool_const", Value: true},
		}},
		{"nested", spec.Spec{
			{Key: "mymod.MyClass obj", Value: map[string]any{
				"items":  []any{1, 2, 3},
				"config": map[string]any{"key": "value"},
			}},
		}},
		{"positional", spec.Spec{
			{Key: "Rec r", Value: map[any]any{0: "x", 1: "y", "flag": true}},
		}},
		{"empty", spec.Spec{}},
	}
	for _, f := range Formats() {
		for _, tc := range tests {
			t.Run(string(f)+"/"+tc.name, func(t *testing.T) {
				want := tc.spec
				switch f {
				case TOML:
					want = sorted(tc.spec)
				case INI:
					want = constantsFirst(tc.spec)
				}
				got := roundTrip(t, f, tc.spec)
				if len(got) != len(want) {
					t.Fatalf("expected %d items, got %d", len(want), len(got))
				}
				for i := range want {
					if got[i].Key != want[i].Key || !reflect.DeepEqual(got[i].Value, want[i].Value) {
						t.Errorf("item %d: expected %#v, got %#v", i, want[i], got[i])
					}
				}
			})
		}
	}
}

func sorted(s spec.Spec) spec.Spec {
	m := map[string]any{}
	for _, item := range s {
		m[item.Key] = item.Value
	}
	return spec.FromMap(m)
}

// constantsFirst orders s the way an INI document holds it: the constants
// section, then one section per component.
func constantsFirst(s spec.Spec) spec.Spec {
	out := spec.Spec{}
	for _, item := range s {
		if !isComponentKey(item.Key) {
			out = append(out, item)
		}
	}
	for _, item := range s {
		if isComponentKey(item.Key) {
			out = append(out, item)
		}
	}
	return out
}

func TestNullConstant(t *testing.T) {
	s := spec.Spec{{Key: "none_const", Value: nil}}
	for _, f := range []Format{YAML, JSON, INI} {
		got := roundTrip(t, f, s)
		if len(got) != 1 || got[0].Value != nil {
			t.Errorf("%s: expected null constant, got %#v", f, got)
		}
	}
	_, err := Marshal(TOML, s)
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Format != TOML {
		t.Errorf("expected TOML format error, got %v", err)
	}
}

func TestDecode_KeepsOrder(t *testing.T) {
	docs := map[Format]string{
		YAML: "zeta: 1\nalpha: 2\n\"A mid\": {}\n",
		JSON: `{"zeta": 1, "alpha": 2, "A mid": {}}`,
	}
	for f, doc := range docs {
		s, err := Decode(f, strings.NewReader(doc))
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if !reflect.DeepEqual(s.Keys(), []string{"zeta", "alpha", "A mid"}) {
			t.Errorf("%s: expected document order, got %v", f, s.Keys())
		}
	}
}

func TestDecode_NumberTypes(t *testing.T) {
	s, err := Unmarshal(JSON, []byte(`{"i": 5432, "f": 0.5, "e": 1e3, "list": [1, 2.5]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []any{5432, 0.5, 1000.0, []any{1, 2.5}}
	for i, w := range want {
		if !reflect.DeepEqual(s[i].Value, w) {
			t.Errorf("item %s: expected %#v, got %#v", s[i].Key, w, s[i].Value)
		}
	}
}

func TestDecode_DecimalKeysOnlyInComponents(t *testing.T) {
	s, err := Unmarshal(JSON, []byte(`{"Rec r": {"0": "x", "1": "y"}, "table": {"0": "x"}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(s[0].Value, map[any]any{0: "x", 1: "y"}) {
		t.Errorf("expected positional keys, got %#v", s[0].Value)
	}
	if !reflect.DeepEqual(s[1].Value, map[string]any{"0": "x"}) {
		t.Errorf("constants keep string keys, got %#v", s[1].Value)
	}

	entries, err := spec.Parse(s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries[0].Args.Positional) != 2 {
		t.Errorf("expected 2 positional args, got %+v", entries[0].Args)
	}
}

func TestDecode_FormatErrors(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
		prefix string
	}{
		{JSON, `{"invalid": json content}`, "JSON format error: "},
		{JSON, `[1, 2]`, "JSON format error: top level must be an object"},
		{TOML, `["invalid toml content`, "TOML format error: "},
		{YAML, "key: [unclosed", "YAML format error: "},
		{YAML, "- a\n- b\n", "YAML format error: line 1: top level must be a mapping"},
		{INI, "[invalid section\nkey = value", "INI format error: "},
		{INI, "[server]\nport = 80\n", "INI format error: section [server] is neither [constants] nor a component"},
	}
	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			_, err := Unmarshal(tc.format, []byte(tc.doc))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %v", err)
			}
			if fe.Format != tc.format {
				t.Errorf("expected format %s, got %s", tc.format, fe.Format)
			}
			if !strings.HasPrefix(err.Error(), tc.prefix) {
				t.Errorf("expected prefix %q, got %q", tc.prefix, err.Error())
			}
		})
	}
}

func TestCrossFormat(t *testing.T) {
	s := spec.Spec{
		{Key: "datetime.datetime now", Value: map[string]any{"year": "{year}"}},
		{Key: "year", Value: 2025},
	}
	fromTOML := roundTrip(t, TOML, roundTrip(t, JSON, s))
	final := roundTrip(t, JSON, fromTOML)
	if !reflect.DeepEqual(final, s) {
		t.Errorf("expected %#v, got %#v", s, final)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wiring.yml")
	if err := os.WriteFile(path, []byte("host: localhost\nport: 5432\nurl: \"{host}:{port}\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(s.Keys(), []string{"host", "port", "url"}) {
		t.Errorf("unexpected keys %v", s.Keys())
	}

	if _, err := Load(filepath.Join(dir, "wiring.xml")); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"yml": YAML, "YAML": YAML, "json": JSON, "toml": TOML, "INI": INI} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestINI_ConstantsSection(t *testing.T) {
	doc := `
[constants]
my_value = 123

[datetime.datetime now]
year = {my_value}
`
	s, err := Unmarshal(INI, []byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := spec.Spec{
		{Key: "my_value", Value: 123},
		{Key: "datetime.datetime now", Value: map[string]any{"year": "{my_value}"}},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("expected %#v, got %#v", want, s)
	}
}

func TestINI_TopLevelKeysAreConstants(t *testing.T) {
	s, err := Unmarshal(INI, []byte("host = localhost\n\n[Rec r]\n0 = {host}\n"))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(s.Keys(), []string{"host", "Rec r"}) {
		t.Fatalf("unexpected keys %v", s.Keys())
	}
	if !reflect.DeepEqual(s[1].Value, map[any]any{0: "{host}"}) {
		t.Errorf("expected positional argument, got %#v", s[1].Value)
	}
}

func TestINI_Booleans(t *testing.T) {
	for raw, want := range map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
	} {
		s, err := Unmarshal(INI, []byte("[constants]\nflag = "+raw+"\n"))
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if s[0].Value != want {
			t.Errorf("%s: expected %v, got %#v", raw, want, s[0].Value)
		}
	}
}

func TestINI_TypedLookingStrings(t *testing.T) {
	s := spec.Spec{
		{Key: "digits", Value: "123"},
		{Key: "word", Value: "TRUE"},
		{Key: "nothing", Value: "null"},
		{Key: "padded", Value: "  x "},
		{Key: "list", Value: "[1]"},
		{Key: "comment", Value: "a;b # c"},
		{Key: "lines", Value: "one\ntwo"},
		{Key: "tick", Value: "a`b"},
		{Key: "empty", Value: ""},
		{Key: "whole", Value: 2.0},
		{Key: "url", Value: "postgres://{host}:{port}/app"},
	}
	got := roundTrip(t, INI, s)
	if !reflect.DeepEqual(got, s) {
		t.Errorf("expected %#v, got %#v", s, got)
	}
}

func TestINI_ComponentShapes(t *testing.T) {
	s := spec.Spec{
		{Key: "Rec list", Value: []any{"x", "{y}"}},
		{Key: "Rec single", Value: "{y}"},
		{Key: "Rec none", Value: nil},
	}
	got := roundTrip(t, INI, s)
	want := []any{
		map[any]any{0: "x", 1: "{y}"},
		map[any]any{0: "{y}"},
		map[string]any{},
	}
	for i, w := range want {
		if got[i].Key != s[i].Key || !reflect.DeepEqual(got[i].Value, w) {
			t.Errorf("%s: expected %#v, got %#v", s[i].Key, w, got[i].Value)
		}
	}
	entries, err := spec.Parse(got)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries[0].Args.Positional) != 2 || len(entries[1].Args.Positional) != 1 {
		t.Errorf("unexpected arguments %+v, %+v", entries[0].Args, entries[1].Args)
	}
}
