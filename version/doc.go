// Package version reports the wirekit build.
//
// Release builds set the variables with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/wirekit/version.Version=v0.3.0" ./cmd/wirekit
//
// Other builds fall back to the module and VCS data recorded by the Go
// toolchain.
package version
