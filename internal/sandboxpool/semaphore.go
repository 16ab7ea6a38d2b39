package sandboxpool

import (
	"context"
	"sync"
)

// semaphore is a counting semaphore whose permit count can grow or shrink
// at runtime (AddPermits/ForgetPermits) and can be closed to wake every
// blocked acquirer with an error, mirroring tokio::sync::Semaphore's
// add_permits/forget_permits pair that golang.org/x/sync/semaphore does
// not expose.
//
// Permits are represented as tokens sitting in a buffered channel sized to
// the largest permit count the pool can ever reach (capacity). Acquire is
// a single select over that channel, the close signal, and ctx.Done: a
// canceled Acquire resolves via the ctx.Done case and never receives from
// the token channel, so cancellation can never consume a permit the
// caller doesn't hold.
type semaphore struct {
	tokens    chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newSemaphore(initial, capacity int) *semaphore {
	if capacity < initial {
		capacity = initial
	}
	s := &semaphore{
		tokens:  make(chan struct{}, capacity),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < initial; i++ {
		s.tokens <- struct{}{}
	}
	return s
}

// Acquire blocks until a permit is available, the semaphore is closed, or
// ctx is canceled. In the last two cases no token is consumed.
func (s *semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-s.closeCh:
		return ErrSemaphoreClosed
	default:
	}
	select {
	case <-s.tokens:
		return nil
	case <-s.closeCh:
		return ErrSemaphoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns one permit.
func (s *semaphore) Release() {
	s.tokens <- struct{}{}
}

// AddPermits increases the permit count by n.
func (s *semaphore) AddPermits(n int) {
	for i := 0; i < n; i++ {
		s.tokens <- struct{}{}
	}
}

// ForgetPermits decreases the permit count by n, floored at zero: it only
// removes tokens currently sitting idle in the channel, never blocking on
// permits presently held by an in-flight Acquire/Release pair.
func (s *semaphore) ForgetPermits(n int) {
	for i := 0; i < n; i++ {
		select {
		case <-s.tokens:
		default:
			return
		}
	}
}

// Close wakes every blocked Acquire with ErrSemaphoreClosed. Safe to call
// more than once.
func (s *semaphore) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}
