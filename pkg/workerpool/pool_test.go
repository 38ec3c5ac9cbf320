package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	t.Parallel()

	p := New(4)
	defer p.Close()

	var count int64
	const n = 100
	p.ParallelFor(n, func(i int) {
		atomic.AddInt64(&count, 1)
	})

	if count != n {
		t.Errorf("ran %d tasks, want %d", count, n)
	}
}

func TestPoolBoundsWorkers(t *testing.T) {
	t.Parallel()

	p := New(2)
	defer p.Close()

	p.ParallelFor(20, func(i int) {
		if r := p.Running(); r > 2 {
			t.Errorf("running workers %d exceeds capacity 2", r)
		}
	})
}

func TestMapPreservesOrder(t *testing.T) {
	t.Parallel()

	p := New(4)
	defer p.Close()

	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := Map(p, in, func(v int) int { return v * v })

	for i, v := range in {
		if out[i] != v*v {
			t.Errorf("out[%d] = %d, want %d", i, out[i], v*v)
		}
	}
}

func TestSubmitAfterClose(t *testing.T) {
	t.Parallel()

	p := New(1)
	p.Close()

	if p.Submit(func() {}) {
		t.Error("Submit succeeded on closed pool")
	}
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	p := New(1)
	p.Close()
	p.Close() // must not panic
}
