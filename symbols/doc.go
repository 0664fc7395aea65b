// Package symbols resolves constructor locators to callable constructors.
//
// The wiring engine never loads code by name. It asks a Resolver for the
// constructor behind a locator such as "net/http.Client" and, for keys with a
// factory segment, for a named factory of that constructor. Registry is the
// in-process Resolver; Func and Options adapt ordinary Go functions:
//
//	reg := symbols.NewRegistry()
//	reg.MustRegister("app.NewServer", symbols.Options(app.NewServer))
//	reg.MustRegister("time.Duration", symbols.Func(time.ParseDuration),
//	    symbols.WithFactory("Seconds", symbols.Func(seconds)))
package symbols
