// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waitq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/waitq"
)

// waitUnblocksOnNotify is shared across the strategy constructors: each
// strategy must return from wait once predicate becomes true, whether or
// not notify was ever called, and must not return before.
func waitUnblocksOnNotify(t *testing.T, name string, newStrategy func() waitq.WaitStrategy) {
	t.Helper()

	// Exercised indirectly through SPSC, since WaitStrategy's methods are
	// unexported outside the package: a blocked Get must return once Put
	// makes the predicate true.
	q := waitq.NewSPSC[int](2, newStrategy(), newStrategy())

	done := make(chan int, 1)
	var started atomix.Bool
	go func() {
		started.Store(true)
		done <- q.Get()
	}()

	for !started.Load() {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(5 * time.Millisecond) // let the goroutine reach Get's wait

	v := 7
	q.Put(&v)

	select {
	case got := <-done:
		if got != 7 {
			t.Fatalf("%s: Get returned %d, want 7", name, got)
		}
	case <-time.After(time.Second):
		t.Fatalf("%s: Get did not unblock after Put", name)
	}
}

func TestWaitStrategies(t *testing.T) {
	strategies := []struct {
		name string
		new  func() waitq.WaitStrategy
	}{
		{"NoOpSpin", waitq.NoOpSpin},
		{"CPUPauseSpin", waitq.CPUPauseSpin},
		{"Yield", waitq.Yield},
		{"Condvar", waitq.NewCondvar},
	}
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			waitUnblocksOnNotify(t, s.name, s.new)
		})
	}
}

// TestCondvarBroadcastWakesAllWaiters verifies that several producers
// blocked in Put on a full NewCondvar-backed queue all complete once the
// consumer frees one slot for each of them.
func TestCondvarBroadcastWakesAllWaiters(t *testing.T) {
	q := waitq.NewMPSC[int](8, waitq.NewCondvar(), waitq.NewCondvar())

	const numConsumersLike = 1 // MPSC has exactly one consumer; exercise
	// the producer-side broadcast instead: multiple producers blocked on a
	// full queue must all wake once the consumer drains one slot.
	_ = numConsumersLike

	for i := range 8 {
		v := i
		if err := q.TryPut(&v); err != nil {
			t.Fatalf("TryPut(%d): %v", i, err)
		}
	}

	const numProducers = 4
	var wg sync.WaitGroup
	unblocked := make(chan int, numProducers)
	for i := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			v := 100 + id
			q.Put(&v) // blocks: queue is full
			unblocked <- id
		}(i)
	}

	time.Sleep(10 * time.Millisecond) // let all producers reach Put's wait

	// Free exactly as many slots as there are blocked producers so every
	// one of them can actually complete its reservation, not just wake up
	// to find the queue still full.
	for range numProducers {
		if _, err := q.TryGet(); err != nil {
			t.Fatalf("TryGet: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not all producers unblocked after TryGet freed one slot per producer")
	}
	if len(unblocked) != numProducers {
		t.Fatalf("unblocked producers: got %d, want %d", len(unblocked), numProducers)
	}
}
