// Package specfile reads and writes wiring specifications as YAML, JSON or
// TOML documents.
//
// YAML and JSON keep the key order of the document. TOML tables are
// unordered, so decoded TOML specifications are sorted by key.
//
// Argument maps of components may use decimal keys ("0", "1") for
// positional arguments in formats whose keys are always strings.
package specfile
