// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waitq

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer with cached-index optimization: the
// producer caches the consumer's dequeue index and vice versa, avoiding a
// cross-core read of the other side's counter on the fast path. The
// put-side and get-side [WaitStrategy] are fixed at construction and
// govern what Put/Get do once the fast path finds the queue full/empty.
//
// Memory: O(capacity) with no per-slot overhead beyond the element itself.
type SPSC[T any] struct {
	_           pad
	head        atomix.Uint64 // consumer reads from here
	_           pad
	cachedTail  uint64 // consumer's cached view of tail
	_           pad
	tail        atomix.Uint64 // producer writes here
	_           pad
	cachedHead  uint64 // producer's cached view of head
	_           pad
	buffer      []T
	mask        uint64
	putStrategy WaitStrategy
	getStrategy WaitStrategy
}

// NewSPSC creates a new SPSC queue. Capacity rounds up to the next power of
// two and must be at least 2. putStrategy governs Put when the queue is
// full; getStrategy governs Get when the queue is empty.
func NewSPSC[T any](capacity int, putStrategy, getStrategy WaitStrategy) *SPSC[T] {
	if capacity < 2 {
		panic("waitq: capacity must be >= 2")
	}
	if putStrategy == nil || getStrategy == nil {
		panic("waitq: wait strategies must not be nil")
	}

	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer:      make([]T, n),
		mask:        n - 1,
		putStrategy: putStrategy,
		getStrategy: getStrategy,
	}
}

// TryPut adds elem to the queue without waiting (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) TryPut(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	q.getStrategy.notify()
	return nil
}

// Put adds elem to the queue (producer only), invoking putStrategy's wait
// for as long as the queue is full. It cannot fail.
func (q *SPSC[T]) Put(elem *T) {
	for q.TryPut(elem) != nil {
		q.putStrategy.wait(func() bool {
			q.cachedHead = q.head.LoadAcquire()
			return q.tail.LoadRelaxed()-q.cachedHead <= q.mask
		})
	}
}

// TryGet removes and returns an element without waiting (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) TryGet() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	q.putStrategy.notify()
	return elem, nil
}

// Get removes and returns an element (consumer only), invoking
// getStrategy's wait for as long as the queue is empty. It cannot fail.
func (q *SPSC[T]) Get() T {
	for {
		elem, err := q.TryGet()
		if err == nil {
			return elem
		}
		q.getStrategy.wait(func() bool {
			q.cachedTail = q.tail.LoadAcquire()
			return q.head.LoadRelaxed() < q.cachedTail
		})
	}
}

// Size returns the approximate number of elements currently queued.
func (q *SPSC[T]) Size() int {
	return int(q.tail.LoadAcquire() - q.head.LoadAcquire())
}

// IsEmpty reports whether the queue currently holds no elements.
func (q *SPSC[T]) IsEmpty() bool {
	return q.head.LoadAcquire() >= q.tail.LoadAcquire()
}

// IsFull reports whether the queue currently holds capacity elements.
func (q *SPSC[T]) IsFull() bool {
	return q.tail.LoadAcquire()-q.head.LoadAcquire() > q.mask
}

// Cap returns the queue capacity (the rounded-up construction capacity).
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}

// Reset returns the queue to its empty, freshly-constructed state.
//
// Reset is defined only when no producer or consumer is concurrently
// active; calling it otherwise is a precondition violation.
func (q *SPSC[T]) Reset() {
	var zero T
	for i := range q.buffer {
		q.buffer[i] = zero
	}
	q.head.StoreRelaxed(0)
	q.cachedTail = 0
	q.tail.StoreRelaxed(0)
	q.cachedHead = 0
}
