// Package async provides helpers for bounded parallel task execution.
//
// The helpers preserve task order in their results: concurrency affects
// wall-clock latency only, never the order in which results are returned.
package async

import (
	"context"
	"sync"
)

// Task produces a value or fails.
type Task[T any] func(ctx context.Context) (T, error)

// MapOrdered runs the tasks with at most limit running concurrently and
// returns their results in task order. A limit below 1 means one at a time.
//
// On the first task error all outstanding work is cancelled and the first
// error (in task order) is returned; no partial results are exposed.
func MapOrdered[T any](ctx context.Context, limit int, tasks []Task[T]) ([]T, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	if limit < 1 {
		limit = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, task := range tasks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := task(ctx)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = out
		}()
	}
	wg.Wait()

	// Report the first failure in task order so the caller sees a
	// deterministic error regardless of scheduling.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
