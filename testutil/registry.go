package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/healthreg/discovery"
)

// Operations recorded by RecordingRegistry.
const (
	OpRegisterScript = "register_script"
	OpRegisterHTTP   = "register_http"
	OpDeregister     = "deregister"
)

// Call is one request seen by RecordingRegistry.
type Call struct {
	Op      string
	CheckID string
	Check   *discovery.CheckInfo
}

// RecordingRegistry is a discovery.CheckRegistry that records calls and fails
// on demand.
type RecordingRegistry struct {
	mu       sync.Mutex
	calls    []Call
	failures map[string]error
	stats    discovery.RegistryStats
	closed   bool
}

// NewRecordingRegistry creates an empty RecordingRegistry.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{failures: make(map[string]error)}
}

// FailOn makes every call for checkID return err. The call is still recorded.
func (r *RecordingRegistry) FailOn(checkID string, err error) *RecordingRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[checkID] = err
	return r
}

func (r *RecordingRegistry) RegisterScriptCheck(_ context.Context, check *discovery.CheckInfo) error {
	return r.record(Call{Op: OpRegisterScript, CheckID: check.ID, Check: copyInfo(check)})
}

func (r *RecordingRegistry) RegisterHTTPCheck(_ context.Context, check *discovery.CheckInfo) error {
	return r.record(Call{Op: OpRegisterHTTP, CheckID: check.ID, Check: copyInfo(check)})
}

func (r *RecordingRegistry) DeregisterCheck(_ context.Context, checkID string) error {
	return r.record(Call{Op: OpDeregister, CheckID: checkID})
}

// Stats counts the calls that did not fail.
func (r *RecordingRegistry) Stats() discovery.RegistryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close marks the registry closed.
func (r *RecordingRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *RecordingRegistry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Calls returns the number of recorded calls.
func (r *RecordingRegistry) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Snapshot returns a copy of the recorded calls in order.
func (r *RecordingRegistry) Snapshot() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CheckIDs returns the check ids of recorded calls with the given op.
func (r *RecordingRegistry) CheckIDs(op string) []string {
	var ids []string
	for _, c := range r.Snapshot() {
		if c.Op == op {
			ids = append(ids, c.CheckID)
		}
	}
	return ids
}

// Reset clears recorded calls and injected failures.
func (r *RecordingRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.failures = make(map[string]error)
	r.stats = discovery.RegistryStats{}
	r.closed = false
}

func (r *RecordingRegistry) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	if err := r.failures[c.CheckID]; err != nil {
		return err
	}
	if c.Op == OpDeregister {
		r.stats.DeregisteredChecks++
	} else {
		r.stats.RegisteredChecks++
	}
	r.stats.LastCall = time.Now()
	return nil
}

func copyInfo(check *discovery.CheckInfo) *discovery.CheckInfo {
	cp := *check
	cp.Args = append([]string(nil), check.Args...)
	return &cp
}

var _ discovery.CheckRegistry = (*RecordingRegistry)(nil)
