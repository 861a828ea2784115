// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waitq

// Builder configures queue creation with a fluent API.
//
// A Builder carries only a capacity until WithPutStrategy/WithGetStrategy
// set the wait strategies; both default to [NoOpSpin] if left unset, so
// BuildSPSC/BuildMPSC always succeed without further configuration.
//
// Example:
//
//	q := waitq.BuildSPSC[Event](waitq.New(1024).
//	        WithPutStrategy(waitq.CPUPauseSpin()).
//	        WithGetStrategy(waitq.NewCondvar()))
type Builder struct {
	capacity    int
	putStrategy WaitStrategy
	getStrategy WaitStrategy
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2. For example, capacity=4
// results in actual capacity=4, capacity=1000 results in actual
// capacity=1024.
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("waitq: capacity must be >= 2")
	}
	return &Builder{capacity: capacity}
}

// WithPutStrategy sets the WaitStrategy applied by the blocking Put when
// the queue is full.
func (b *Builder) WithPutStrategy(s WaitStrategy) *Builder {
	b.putStrategy = s
	return b
}

// WithGetStrategy sets the WaitStrategy applied by the blocking Get when
// the queue is empty.
func (b *Builder) WithGetStrategy(s WaitStrategy) *Builder {
	b.getStrategy = s
	return b
}

func (b *Builder) resolve() (put, get WaitStrategy) {
	put, get = b.putStrategy, b.getStrategy
	if put == nil {
		put = NoOpSpin()
	}
	if get == nil {
		get = NoOpSpin()
	}
	return put, get
}

// BuildSPSC creates an [SPSC] queue with the builder's capacity and wait
// strategies.
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	put, get := b.resolve()
	return NewSPSC[T](b.capacity, put, get)
}

// BuildMPSC creates an [MPSC] queue with the builder's capacity and wait
// strategies.
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	put, get := b.resolve()
	return NewMPSC[T](b.capacity, put, get)
}
