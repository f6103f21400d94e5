package validate

import (
	"context"
	"sort"
)

// Validator is a named unit of check logic bound to its arguments at
// registration time. Check appends zero or more results for configuration
// problems; it returns an error only when the check itself could not run.
type Validator interface {
	Type() string
	Check(ctx context.Context, rc *RunContext) ([]Result, error)
}

// Node is a resource-tree node the engine can traverse. Nested children are
// returned in declaration/collection order; validators are registered
// lazily, at validation time, against the node's current state.
type Node interface {
	SectionType() string
	Label() string
	Nested() []Node
	RegisterValidators(rc *RunContext, reg *Registry)
}

type registration struct {
	validator Validator
	priority  int
	seq       int
}

// Registry collects the validators a node registers for one run.
type Registry struct {
	entries []registration
}

// Add registers a validator. Validators with higher priority run first;
// ties keep registration order.
func (r *Registry) Add(priority int, v Validator) {
	r.entries = append(r.entries, registration{validator: v, priority: priority, seq: len(r.entries)})
}

// ordered returns the registered validators in execution order.
func (r *Registry) ordered() []Validator {
	entries := make([]registration, len(r.entries))
	copy(entries, r.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})
	out := make([]Validator, len(entries))
	for i, e := range entries {
		out[i] = e.validator
	}
	return out
}
