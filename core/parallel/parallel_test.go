package parallel

import (
	"runtime"
	"sync"
	"testing"
)

func TestParallelizeNCoversEveryItemOnce(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{"more workers than items", 3, 8},
		{"even split", 100, 4},
		{"uneven split", 101, 4},
		{"single worker", 10, 1},
		{"empty", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int, tt.items)
			var mu sync.Mutex
			ParallelizeN(tt.items, tt.workers, func(start, end int) {
				mu.Lock()
				defer mu.Unlock()
				for i := start; i < end; i++ {
					counts[i]++
				}
			})
			for i, c := range counts {
				if c != 1 {
					t.Fatalf("item %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, DefaultThreshold, 8, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single range [0, 10), got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected 1 call below threshold, got %d", calls)
	}
}

func TestParallelize(t *testing.T) {
	out := make([]int, 5000)
	Parallelize(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = i * 2
		}
	})
	for i, v := range out {
		if v != i*2 {
			t.Fatalf("out[%d] = %d", i, v)
		}
	}
}

func TestWorkers(t *testing.T) {
	if got := Workers(-1); got != runtime.NumCPU() {
		t.Errorf("Workers(-1) = %d, want %d", got, runtime.NumCPU())
	}
	if got := Workers(0); got != 1 {
		t.Errorf("Workers(0) = %d, want 1", got)
	}
	if got := Workers(3); got != 3 {
		t.Errorf("Workers(3) = %d, want 3", got)
	}
}
