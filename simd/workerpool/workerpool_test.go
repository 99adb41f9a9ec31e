package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestRunOverPartitions(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.RunOverPartitions(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestRunOverPartitionsSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	n := 3
	var count atomic.Int32

	pool.RunOverPartitions(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestRunOverPartitionsZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.RunOverPartitions(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("RunOverPartitions with n=0 should not call fn")
	}
}

func TestRunOverPartitionsCoversEveryRangeExactlyOnce(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 37 // not evenly divisible by worker count, exercises the tail chunk
	covered := make([]int32, n)

	pool.RunOverPartitions(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})

	for i, c := range covered {
		if c != 1 {
			t.Errorf("partition %d covered %d times, want 1", i, c)
		}
	}
}

func TestRunOverVertexChunks(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.RunOverVertexChunks(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

// TestRunOverVertexChunksUnevenLoad exercises the work-stealing claim loop
// against a column where one batch does far more work than the rest, the
// scenario this method exists for over a fixed split: a worker that
// finishes its first batch fast should pick up idle batches rather than
// sit blocked on a peer's slow one.
func TestRunOverVertexChunksUnevenLoad(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 400
	batchSize := 10
	var touched atomic.Int64

	pool.RunOverVertexChunks(n, batchSize, func(start, end int) {
		if start == 0 {
			// Simulate the heaviest batch landing first.
			for i := 0; i < 1000; i++ {
				touched.Add(1)
			}
		}
		touched.Add(int64(end - start))
	})

	want := int64(n) + 1000
	if got := touched.Load(); got != want {
		t.Errorf("touched = %d, want %d", got, want)
	}
}

func TestRunOverVertexChunksZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.RunOverVertexChunks(0, 10, func(start, end int) {
		called = true
	})

	if called {
		t.Error("RunOverVertexChunks with n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Closed pool falls back to sequential execution.
	pool.RunOverPartitions(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}
