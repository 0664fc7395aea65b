// Package config loads wirekit settings.
//
// Settings come from an optional YAML, JSON or TOML file, an optional .env
// file and WIREKIT_* environment variables, in increasing precedence:
//
//	cfg, err := config.Load(config.WithConfigFile("wirekit.yml"))
//
// WIREKIT_CONTAINER_THREAD_SAFE=true sets container.thread_safe.
package config
