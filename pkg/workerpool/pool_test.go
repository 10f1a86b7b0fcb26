package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolFIFOWithinSingleWorker(t *testing.T) {
	p := New(1)
	p.Start()
	defer p.CloseAndDrain()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		i := i
		p.Enqueue(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want sequential 0..4", order)
		}
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := New(2)
	p.Start()
	defer p.CloseAndDrain()

	var ran atomic.Bool
	p.Enqueue(func() { panic("boom") })
	p.Enqueue(func() { ran.Store(true) })

	deadline := time.Now().Add(2 * time.Second)
	for !ran.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !ran.Load() {
		t.Fatal("expected second task to run despite first task's panic")
	}
}

func TestPoolCloseAndDrainJoins(t *testing.T) {
	p := New(4)
	p.Start()

	var n atomic.Int32
	for i := 0; i < 20; i++ {
		p.Enqueue(func() { n.Add(1) })
	}
	p.CloseAndDrain()

	if got := n.Load(); got != 20 {
		t.Fatalf("processed %d tasks, want 20", got)
	}
}
