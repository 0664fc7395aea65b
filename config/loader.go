package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WIREKIT"

// FileSystem abstracts the file operations of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on the operating system.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// configSearchPaths are tried in order when no config file is given.
var configSearchPaths = []string{
	"./wirekit.yml",
	"./wirekit.yaml",
	"./wirekit.json",
	"./wirekit.toml",
	"./config/wirekit.yml",
	"./config/wirekit.yaml",
}

// envSearchPaths are tried in order when no env file is given.
var envSearchPaths = []string{
	"./.env.wirekit",
	"./.env",
	"./config/.env",
}

// LoaderConfig holds the loader dependencies and file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption configures Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the filesystem used to find files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file. A missing explicit file is
// an error.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// ResolvedFiles are the files Load reads.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit files of lc or the first existing file
// of each search list.
func ResolveFiles(lc LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = firstExisting(lc.FileSystem, configSearchPaths)
	}
	if files.EnvFile == "" {
		files.EnvFile = firstExisting(lc.FileSystem, envSearchPaths)
	}
	return files
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// Load reads, defaults and validates the configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	explicit := lc.ConfigFile != ""
	files := ResolveFiles(lc)

	v := viper.New()
	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			if explicit {
				return nil, fmt.Errorf("config file %s not found", files.ConfigFile)
			}
		} else {
			v.SetConfigFile(files.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file %s: %w", files.ConfigFile, err)
			}
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", files.EnvFile, err)
		}
	}
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindEnv copies every WIREKIT_* variable into v under each nested key it
// could denote.
func bindEnv(v *viper.Viper) {
	prefix := EnvPrefix + "_"
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, variant := range envKeyVariants(strings.TrimPrefix(key, prefix)) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants returns the dotted keys an underscore separated variable
// name may stand for. Segments keep their own underscores, so
// CONTAINER_MAX_LOCK_ATTEMPTS yields container.max_lock_attempts among
// others.
func envKeyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	var out []string
	seen := map[string]bool{}
	var walk func(i int, acc string)
	walk = func(i int, acc string) {
		if i == len(parts) {
			if !seen[acc] {
				seen[acc] = true
				out = append(out, acc)
			}
			return
		}
		walk(i+1, acc+"."+parts[i])
		walk(i+1, acc+"_"+parts[i])
	}
	switch {
	case len(parts) < 2:
		return nil
	case len(parts) > 6:
		return []string{strings.Join(parts, "."), strings.Join(parts, "_")}
	}
	walk(1, parts[0])
	return out
}
