// Package testutil provides fixtures shared by package tests.
//
// Release archives are built on an in-memory filesystem:
//
//	archive := testutil.NewArchive(t, "/deploy/app").
//	    AppSpec("version: 0.0\n").
//	    Script("healthchecks/consul/scripts/check.sh")
//	spec := archive.LoadAppSpec()
//
// RecordingRegistry stands in for a discovery backend. It records every call
// in order and can be told to fail selected checks:
//
//	reg := testutil.NewRecordingRegistry()
//	reg.FailOn("web:disk", errors.New("agent unavailable"))
//
// Reset clears recorded calls and injected failures; Snapshot returns a copy
// of the calls seen so far.
package testutil
