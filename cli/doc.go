// Package cli implements the healthreg command line: register, deregister
// and validate. Commands return *ExitError to tell main which process exit
// code to use.
package cli
