// Package fetch bounds the fan-out of detail fetches and attachment
// downloads against the remote API.
package fetch

import (
	"context"
	"log"
	"sync"
)

// All runs fn once per id with at most width calls in flight, keeping only
// the successes. A failed fetch is logged with its id and dropped; it never
// aborts sibling fetches, so callers must not assume output count equals
// input count. Result order follows completion, not input.
func All[T any](ctx context.Context, kind string, ids []string, width int, fn func(context.Context, string) (T, error)) []T {
	if width < 1 {
		width = 1
	}
	gate := make(chan struct{}, width)

	var (
		mu      sync.Mutex
		results []T
		wg      sync.WaitGroup
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate <- struct{}{}
			defer func() { <-gate }()

			v, err := fn(ctx, id)
			if err != nil {
				log.Printf("Warning: failed to fetch %s %s: %v", kind, id, err)
				return
			}
			mu.Lock()
			results = append(results, v)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results
}
