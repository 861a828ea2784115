// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package waitq provides bounded, in-process FIFO queues with pluggable
// wait strategies.
//
// Two algorithms are offered, matched to the producer/consumer pattern:
//
//   - SPSC: Single-Producer Single-Consumer, a Lamport ring buffer with
//     cached-index optimization.
//   - MPSC: Multi-Producer Single-Consumer, CAS-reservation with an
//     ordered commit counter so concurrent producers still publish in
//     FIFO order.
//
// Neither algorithm takes a lock of its own; both fall back to a
// caller-selected [WaitStrategy] once that fast path finds the queue full
// or empty. Every successful operation calls notify on the opposite side's
// strategy, and a [NewCondvar] strategy's notify locks its mutex, so the
// fast path is lock-free only when neither side uses [NewCondvar].
//
// # Quick Start
//
// Direct constructors:
//
//	q := waitq.NewSPSC[Event](1024, waitq.CPUPauseSpin(), waitq.CPUPauseSpin())
//	q := waitq.NewMPSC[Request](4096, waitq.Yield(), waitq.NewCondvar())
//
// Builder API:
//
//	q := waitq.BuildSPSC[Event](waitq.New(1024).
//	        WithPutStrategy(waitq.CPUPauseSpin()).
//	        WithGetStrategy(waitq.NewCondvar()))
//
// # Basic Usage
//
//	q := waitq.NewSPSC[int](1024, waitq.NoOpSpin(), waitq.NoOpSpin())
//
//	// TryPut/TryGet never wait.
//	value := 42
//	if err := q.TryPut(&value); waitq.IsWouldBlock(err) {
//	    // queue is full, handle backpressure
//	}
//	elem, err := q.TryGet()
//	if waitq.IsWouldBlock(err) {
//	    // queue is empty, try again later
//	}
//
//	// Put/Get invoke the configured WaitStrategy and cannot fail.
//	q.Put(&value)
//	elem = q.Get()
//
// # Common Patterns
//
// Pipeline Stage (SPSC):
//
//	q := waitq.NewSPSC[Data](1024, waitq.Yield(), waitq.Yield())
//
//	go func() { // producer
//	    for data := range input {
//	        q.Put(&data)
//	    }
//	}()
//
//	go func() { // consumer
//	    for {
//	        process(q.Get())
//	    }
//	}()
//
// Event Aggregation (MPSC):
//
//	q := waitq.NewMPSC[Event](4096, waitq.CPUPauseSpin(), waitq.NewCondvar())
//
//	for _, sensor := range sensors { // multiple producers
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Put(&ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // single consumer
//	    for {
//	        aggregate(q.Get())
//	    }
//	}()
//
// Non-blocking backoff with [code.hybscloud.com/iox]:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.TryPut(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !waitq.IsWouldBlock(err) {
//	        return err // unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// # Wait Strategies
//
// Five strategies are provided, chosen independently for the put side and
// the get side of a queue:
//
//	Immediate()     - for Try-only usage; blocking Put/Get busy-retry
//	NoOpSpin()      - tight busy-retry, lowest latency, burns a full core
//	CPUPauseSpin()  - busy-retry with an architecture pause hint
//	Yield()         - retries via runtime.Gosched between attempts
//	NewCondvar()    - sleeps on a sync.Cond, lowest CPU, highest latency
//
// # Capacity
//
// Capacity rounds up to the next power of 2:
//
//	waitq.NewSPSC[int](3, ...)    // actual capacity: 4
//	waitq.NewSPSC[int](1000, ...) // actual capacity: 1024
//
// Minimum capacity is 2. Constructors panic if capacity < 2.
//
// Size is intentionally approximate: exact counts under concurrent
// activity require cross-core synchronization the algorithms are designed
// to avoid on the fast path.
//
// # Thread Safety
//
//   - SPSC: exactly one producer goroutine, one consumer goroutine.
//   - MPSC: any number of producer goroutines, exactly one consumer
//     goroutine.
//
// Violating these constraints causes undefined behavior including data
// corruption and races.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic acquire-release orderings on separate
// variables. Tests that stress the lock-free fast path without additional
// synchronization are gated with //go:build !race; see [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package waitq
