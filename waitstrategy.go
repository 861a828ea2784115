// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waitq

import (
	"runtime"
	"sync"

	"code.hybscloud.com/spin"
)

// Immediate returns a WaitStrategy whose wait is never invoked by the
// blocking Put/Get path in normal use — a queue configured with Immediate
// is meant to be driven through TryPut/TryGet, which return ErrWouldBlock
// on the spot instead of waiting. Calling the blocking Put/Get on a side
// configured with Immediate still cannot deadlock: it degenerates to the
// same tight busy-retry as [NoOpSpin], since Immediate defines no backoff
// of its own.
func Immediate() WaitStrategy { return immediateStrategy{} }

type immediateStrategy struct{}

func (immediateStrategy) wait(predicate func() bool) {
	for !predicate() {
	}
}

func (immediateStrategy) notify() {}

// NoOpSpin returns a WaitStrategy that busy-retries predicate with no pause
// and no notification, re-checking it in a tight loop until it holds.
// Lowest latency when the caller can dedicate a core to the wait.
func NoOpSpin() WaitStrategy { return noOpSpinStrategy{} }

type noOpSpinStrategy struct{}

func (noOpSpinStrategy) wait(predicate func() bool) {
	for !predicate() {
	}
}

func (noOpSpinStrategy) notify() {}

// CPUPauseSpin returns a WaitStrategy that busy-retries predicate, emitting
// the architecture's low-power spin hint between attempts via
// [code.hybscloud.com/spin]. SMT-aware: frees execution slots on the
// sibling hardware thread without yielding the core to the scheduler.
func CPUPauseSpin() WaitStrategy { return cpuPauseSpinStrategy{} }

type cpuPauseSpinStrategy struct{}

func (cpuPauseSpinStrategy) wait(predicate func() bool) {
	var sw spin.Wait
	for !predicate() {
		sw.Once()
	}
}

func (cpuPauseSpinStrategy) notify() {}

// Yield returns a WaitStrategy that hands the core back to the Go scheduler
// between retries. Appropriate when the wait may contend against unrelated
// goroutines rather than just the opposite side of the queue.
func Yield() WaitStrategy { return yieldStrategy{} }

type yieldStrategy struct{}

func (yieldStrategy) wait(predicate func() bool) {
	for !predicate() {
		runtime.Gosched()
	}
}

func (yieldStrategy) notify() {}

// NewCondvar returns a WaitStrategy backed by a mutex and condition
// variable: the deepest sleep of the five variants, suited to deep queues
// and long idle periods where busy-waiting would waste CPU for no latency
// benefit. notify broadcasts to wake every waiter rather than signaling a
// single one, since a single Signal could wake a goroutine whose own
// predicate is still false while leaving the one that should proceed
// asleep.
func NewCondvar() WaitStrategy {
	s := &condvarStrategy{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// condvarStrategy sleeps on a sync.Cond until a predicate holds, waking all
// waiters on notify, built on sync.Mutex/sync.Cond the way context_pool.go
// and the franz-go producer in the retrieval pack do for similar wait/
// notify handoffs.
type condvarStrategy struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func (s *condvarStrategy) wait(predicate func() bool) {
	s.mu.Lock()
	for !predicate() {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *condvarStrategy) notify() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}
