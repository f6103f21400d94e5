package validate

import (
	"context"

	"github.com/hpcfleet/hpcfleet/internal/util/async"
)

// Options configure one validation run.
type Options struct {
	// Concurrency bounds how many validators run at once. The default of 1
	// runs everything sequentially; higher values only shorten wall-clock
	// time for live provider checks, never change output order.
	Concurrency int
}

// Option mutates run options.
type Option func(*Options)

// WithConcurrency sets the validator concurrency bound.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// Run traverses the tree and executes every registered validator, returning
// all results in deterministic order: each node's nested children first (in
// declaration/collection order, recursively), then the node's own
// validators by descending priority. Results for a leaf cause therefore
// always precede results for resources that depend on it.
//
// A validator error aborts the run: no partial results are returned, and
// the caller must treat the error as "the run could not complete", distinct
// from a configuration problem.
func Run(ctx context.Context, root Node, rc *RunContext, opts ...Option) ([]Result, error) {
	options := &Options{Concurrency: 1}
	for _, opt := range opts {
		opt(options)
	}

	validators := collect(root, rc)

	tasks := make([]async.Task[[]Result], len(validators))
	for i, v := range validators {
		tasks[i] = func(ctx context.Context) ([]Result, error) {
			rc.Log.V(1).Info("running validator", "type", v.Type())
			return v.Check(ctx, rc)
		}
	}

	// MapOrdered re-sorts concurrent completions back into registration
	// order, so concurrency is never observable in the output.
	grouped, err := async.MapOrdered(ctx, options.Concurrency, tasks)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, group := range grouped {
		results = append(results, group...)
	}
	return results, nil
}

// collect gathers validators depth-first, children before self. Each node's
// validators are registered lazily here so they bind the node's current
// state, then ordered by priority within the node.
func collect(node Node, rc *RunContext) []Validator {
	var out []Validator
	for _, child := range node.Nested() {
		out = append(out, collect(child, rc)...)
	}

	reg := &Registry{}
	node.RegisterValidators(rc, reg)
	return append(out, reg.ordered()...)
}
