// Package parallel splits row loops across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count at or below which loops run sequentially.
const DefaultThreshold = 1000

// Workers resolves an n_jobs style setting: -1 (or any negative value) means
// every CPU, 0 means one worker.
func Workers(nJobs int) int {
	switch {
	case nJobs < 0:
		return runtime.NumCPU()
	case nJobs == 0:
		return 1
	default:
		return nJobs
	}
}

// Parallelize divides items across runtime.NumCPU() workers and calls fn
// once per contiguous [start, end) range.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN divides items across at most workers goroutines and waits
// for all of them.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers > items {
		workers = items
	}
	if workers <= 1 {
		fn(0, items)
		return
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items <= threshold and
// in parallel on workers goroutines otherwise.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	ParallelizeN(items, workers, fn)
}
