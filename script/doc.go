// Package script resolves declared health-check scripts to absolute paths and
// grants them execute permission.
//
// Bundled scripts live inside the release archive, relative to the base
// directory of the definition source. Agent-side scripts are looked up in an
// ordered list of plugin directories on the host.
package script
