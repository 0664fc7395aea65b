// Package di builds containers from wiring specifications.
//
// A specification maps keys to values. Keys with a space name components,
// "<locator> <name>" or "<locator> <name>.<factory>"; other keys name
// constants. Whole-string values "{name}" refer to other entries.
//
//	reg := symbols.NewRegistry().
//		MustRegister("sql.Open", symbols.Func(sql.Open))
//	c, err := di.New(spec.Spec{
//		{Key: "dsn", Value: "postgres://localhost/app"},
//		{Key: "sql.Open db", Value: []any{"postgres", "{dsn}"}},
//	}, reg, di.WithThreadSafe(true))
//
//	db, err := di.Resolve[*sql.DB](ctx, c, "db")
//
// Every entry is instantiated at most once per container. Asynchronous
// access goes through Aio.
package di
