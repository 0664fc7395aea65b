// Package compiler generates Go source for a container equivalent to the
// runtime container of package di.
//
// Every entry becomes a method with its references emitted as direct
// method calls, so no specification is parsed at run time:
//
//	c, err := compiler.New(s)
//	src, err := c.Generate(compiler.Options{Package: "wired", Async: true})
//
// Generated containers share the cache and locking of package resolve and
// return the same errors as the runtime container.
package compiler
