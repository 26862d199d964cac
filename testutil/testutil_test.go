package testutil_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/testutil"
)

func TestArchive(t *testing.T) {
	archive := testutil.NewArchive(t, "/deploy/app").
		AppSpec("version: 0.0\nconsul_healthchecks: {}\n").
		Definitions("sensu", "sensu_healthchecks: {}\n").
		Script("scripts/check.sh")

	if _, ok := archive.LoadAppSpec().Lookup("consul_healthchecks"); !ok {
		t.Error("expected consul_healthchecks key in appspec")
	}
	if !archive.Reader().Exists(archive.Dir(), "healthchecks/sensu/healthchecks.yml") {
		t.Error("expected bundled definition file")
	}

	info, err := archive.Fs().Stat(archive.Path("scripts/check.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 != 0 {
		t.Errorf("fixture scripts start without exec bits, got %v", info.Mode())
	}
}

func TestArchivesShareFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	current := testutil.NewArchiveOn(t, fs, "/deploy/current").AppSpec("a: 1\n")
	previous := testutil.NewArchiveOn(t, fs, "/deploy/previous").AppSpec("b: 2\n")

	if current.Fs() != previous.Fs() {
		t.Error("expected archives on one filesystem")
	}
	if _, err := current.Reader().LoadAppSpec(previous.Dir()); err != nil {
		t.Errorf("reader should see the other archive: %v", err)
	}
}

func TestRecordingRegistry(t *testing.T) {
	ctx := context.Background()
	reg := testutil.NewRecordingRegistry().FailOn("web:mem", errors.New("agent down"))

	if err := reg.RegisterScriptCheck(ctx, &discovery.CheckInfo{ID: "web:disk", Args: []string{"/a.sh"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.RegisterHTTPCheck(ctx, &discovery.CheckInfo{ID: "web:mem"}); err == nil {
		t.Error("expected injected failure")
	}
	if err := reg.DeregisterCheck(ctx, "web:disk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Calls() != 3 {
		t.Fatalf("expected 3 calls, got %d", reg.Calls())
	}
	if got := reg.CheckIDs(testutil.OpRegisterScript); !reflect.DeepEqual(got, []string{"web:disk"}) {
		t.Errorf("unexpected script registrations %v", got)
	}
	if got := reg.Snapshot()[2]; got.Op != testutil.OpDeregister || got.Check != nil {
		t.Errorf("unexpected deregister call %+v", got)
	}
	if s := reg.Stats(); s.RegisteredChecks != 1 || s.DeregisteredChecks != 1 || s.LastCall.IsZero() {
		t.Errorf("failed calls must not count in stats, got %+v", s)
	}

	reg.Reset()
	if reg.Calls() != 0 || reg.Stats().RegisteredChecks != 0 {
		t.Error("expected Reset to clear calls and stats")
	}
	if err := reg.RegisterHTTPCheck(ctx, &discovery.CheckInfo{ID: "web:mem"}); err != nil {
		t.Errorf("expected Reset to clear failures, got %v", err)
	}
}

func TestRecordingRegistryCopiesArgs(t *testing.T) {
	reg := testutil.NewRecordingRegistry()
	info := &discovery.CheckInfo{ID: "web:disk", Args: []string{"/a.sh", "blue"}}
	_ = reg.RegisterScriptCheck(context.Background(), info)
	info.Args[1] = "green"

	if got := reg.Snapshot()[0].Check.Args[1]; got != "blue" {
		t.Errorf("recorded args should not alias caller's slice, got %q", got)
	}
}
