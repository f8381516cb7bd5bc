package mdsite

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps render workers.
	MaxPoolSize = 64
)

// ResolvePoolSize determines the number of render workers.
// Priority: explicit workers > GOMAXPROCS (set by automaxprocs in containers).
func ResolvePoolSize(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(MinPoolSize, min(n, MaxPoolSize))
}

// runBatch calls fn for every index in [0, n) using at most workers
// goroutines and returns the results in index order. Jobs not started
// before ctx is done get the result of cancelled(i).
func runBatch[T any](ctx context.Context, workers, n int, fn func(ctx context.Context, i int) T, cancelled func(i int, err error) T) []T {
	if n == 0 {
		return nil
	}

	concurrency := min(ResolvePoolSize(workers), n)
	results := make([]T, n)
	jobs := make(chan int, n)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = cancelled(i, err)
					continue
				}
				results[i] = fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
