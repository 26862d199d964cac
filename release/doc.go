// Package release reads an unpacked release archive: its application
// specification (appspec.yml) and the files bundled with it.
package release
