package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/wirekit/compiler"
	"github.com/kbukum/wirekit/specfile"
)

const testSpec = `host: localhost
port: 5432
dsn: "postgres://{host}:{port}/app"
Store db:
  dsn: "{dsn}"
Cache cache:
  - "{db}"
label: "cache over {db}"
broken: "{missing}"
`

const testConfig = `log:
  output: none
compile:
  package: generated
`

func setupFiles(t *testing.T) (dir, specPath, configPath string) {
	t.Helper()
	dir = t.TempDir()
	specPath = filepath.Join(dir, "wiring.yaml")
	configPath = filepath.Join(dir, "wirekit.yml")
	if err := os.WriteFile(specPath, []byte(testSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, specPath, configPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := newCLI(&out)
	c.root.SetArgs(args)
	c.root.SetErr(&out)
	err := c.Exec()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	_, specPath, configPath := setupFiles(t)
	out, err := run(t, "check", specPath, "--config", configPath)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"7 entries (3 eager, 4 lazy)",
		"level 0: host, port, broken",
		"level 1: dsn",
		"level 2: db",
		"level 3: cache, label",
		"warning: broken references unknown entry missing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCheck_Cycle(t *testing.T) {
	dir, _, configPath := setupFiles(t)
	path := filepath.Join(dir, "cycle.json")
	if err := os.WriteFile(path, []byte(`{"A a": ["{b}"], "B b": ["{a}"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "check", path, "--config", configPath)
	if err == nil || !strings.Contains(err.Error(), "CIRCULAR_DEPENDENCY") {
		t.Errorf("expected a circular dependency error, got %v\n%s", err, out)
	}
}

func TestCompile(t *testing.T) {
	dir, specPath, configPath := setupFiles(t)
	output := filepath.Join(dir, "gen", "container.go")
	if out, err := run(t, "compile", specPath, "--config", configPath, "--async", "-o", output); err != nil {
		t.Fatalf("compile failed: %v\n%s", err, out)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	s, err := specfile.Load(specPath)
	if err != nil {
		t.Fatal(err)
	}
	c, err := compiler.New(s)
	if err != nil {
		t.Fatal(err)
	}
	want, err := c.Generate(compiler.Options{Package: "generated", Async: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("unexpected generated source:\n%s", got)
	}
}

func TestCompile_Stdout(t *testing.T) {
	_, specPath, configPath := setupFiles(t)
	out, err := run(t, "compile", specPath, "--config", configPath, "--package", "deps", "--thread-safe")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	for _, want := range []string{"package deps\n", "resolve.WithThreadSafe(true)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestConvert(t *testing.T) {
	_, specPath, configPath := setupFiles(t)
	out, err := run(t, "convert", specPath, "--config", configPath, "--to", "json")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	s, err := specfile.Unmarshal(specfile.JSON, []byte(out))
	if err != nil {
		t.Fatalf("output is not a JSON specification: %v\n%s", err, out)
	}
	want, _ := specfile.Load(specPath)
	if strings.Join(s.Keys(), ",") != strings.Join(want.Keys(), ",") {
		t.Errorf("expected keys %v, got %v", want.Keys(), s.Keys())
	}
}

func TestConvert_UnknownFormat(t *testing.T) {
	_, specPath, configPath := setupFiles(t)
	if _, err := run(t, "convert", specPath, "--config", configPath, "--to", "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestConvert_INI(t *testing.T) {
	_, specPath, configPath := setupFiles(t)
	out, err := run(t, "convert", specPath, "--config", configPath, "--to", "ini")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "[constants]") || !strings.Contains(out, "[Store db]") {
		t.Errorf("expected constants and component sections, got\n%s", out)
	}
	s, err := specfile.Unmarshal(specfile.INI, []byte(out))
	if err != nil {
		t.Fatalf("output is not an INI specification: %v\n%s", err, out)
	}
	want := []string{"host", "port", "dsn", "label", "broken", "Store db", "Cache cache"}
	if strings.Join(s.Keys(), ",") != strings.Join(want, ",") {
		t.Errorf("expected keys %v, got %v", want, s.Keys())
	}
}

func TestVersion(t *testing.T) {
	_, _, configPath := setupFiles(t)
	out, err := run(t, "version", "--config", configPath, "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, `"version"`) {
		t.Errorf("expected JSON build information, got %s", out)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := run(t, "version", "--config", filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected an error for a missing configuration file")
	}
}
