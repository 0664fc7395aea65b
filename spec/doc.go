// Package spec holds the specification model of the wiring engine and the
// parser that turns a raw ordered mapping into classified entries.
//
// A key containing a space declares a component:
//
//	"<locator> <name>"            constructor found by locator
//	"<locator> <name>.<factory>"  named factory of that constructor
//
// Any other key declares a constant. Values may reference other entries with
// whole-string placeholders such as "{db}". Inside constants, strings mixing
// text and placeholders ("{host}:{port}") are interpolated.
package spec
