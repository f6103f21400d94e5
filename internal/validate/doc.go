// Package validate runs registered configuration checks over a resource
// tree and returns severity-classified results in a deterministic order.
//
// The engine walks the tree depth-first, children before parents, and runs
// each node's validators in descending priority order. Configuration
// problems are reported as [Result] values; a validator error (unreachable
// provider, malformed response, programming defect) aborts the whole run.
// The engine never decides pass/fail: callers compare the returned results
// against their own failure threshold.
package validate
