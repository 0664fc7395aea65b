// Package dag builds the dependency graph of a parsed specification.
//
// The graph is ordered with Kahn's algorithm, breaking ties by specification
// order, and rejects cycles with an error naming every node left unprocessed.
// Build turns the ordered graph into a Plan: the intermediate representation
// shared by the runtime container and the compiler. A Plan knows the
// evaluation order and holds the eagerly expanded constants.
package dag
