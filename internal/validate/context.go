package validate

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/hpcfleet/hpcfleet/internal/awsapi"
)

// RunContext carries the state shared across one validation run: the
// provider client set (with run-scoped memoization of describe calls), the
// logger, and the single-fire diagnostic set. A RunContext must not be
// reused across runs.
type RunContext struct {
	// EC2 is nil when live provider checks are disabled for the run.
	EC2 awsapi.EC2

	Log logr.Logger

	mu        sync.Mutex
	signalled map[string]struct{}
}

// NewRunContext builds a run context around a provider client. The client
// is wrapped with run-scoped memoization so repeated describe calls within
// the run hit the provider once. A nil client disables live checks.
func NewRunContext(client awsapi.EC2, log logr.Logger) *RunContext {
	rc := &RunContext{Log: log, signalled: make(map[string]struct{})}
	if client != nil {
		rc.EC2 = awsapi.Memoize(client)
	}
	return rc
}

// LiveChecksEnabled reports whether validators may call the provider.
func (rc *RunContext) LiveChecksEnabled() bool {
	return rc.EC2 != nil
}

// SignalOnce reports whether this is the first time the key is signalled
// within the run. Validators that emit a diagnostic at most once per run
// (rather than once per resource instance) gate their REGISTRATION on it,
// not their Check: registration happens during the engine's sequential tree
// walk, so which candidate fires is decided by registration order and never
// by run concurrency.
//
// Deduplication is deliberately per run, not per process: cross-run
// deduplication would be hidden global state and is not provided.
func (rc *RunContext) SignalOnce(key string) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, seen := rc.signalled[key]; seen {
		return false
	}
	rc.signalled[key] = struct{}{}
	return true
}
