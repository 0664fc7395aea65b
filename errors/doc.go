// Package errors provides the typed error taxonomy of the wiring engine.
// Every failure raised by the parser, the graph builder, the resolution
// engine and the compiler is a *WiringError carrying a machine-readable
// code, the entry names involved and, for cycles, the offending chain.
package errors
