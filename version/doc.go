// Package version reports the healthreg build.
//
// Version and commit are stamped at build time:
//
//	go build -ldflags "-X github.com/kbukum/healthreg/version.Version=1.4.0" ./cmd/healthreg
//
// Unstamped builds fall back to the VCS data the Go toolchain embeds.
package version
