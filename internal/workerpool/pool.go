// Package workerpool implements a bounded background worker pool: a
// front-end (here, the HTTP collaborator) may run independent solve
// calls in parallel, keyed by position identity so duplicate
// submissions for the same position are ignored, with the oldest
// in-flight submission's context cancelled when the pool is full.
// Cancellation is cooperative: a task that ignores its context keeps
// running.
//
// This is an out-of-core collaborator, not part of the pure solver:
// the solver itself runs single-threaded within each submission.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool bounds concurrent background work by position identity.
type Pool struct {
	mu         sync.Mutex
	maxWorkers int
	inFlight   map[string]context.CancelFunc
	order      []string
	group      errgroup.Group
}

// New returns a Pool that tracks at most maxWorkers in-flight
// submissions, cancelling the oldest one's context to admit a new one.
// It does not wait for a cancelled task to return, so more than
// maxWorkers tasks can be running at once. maxWorkers <= 0 is treated
// as 1.
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Pool{
		maxWorkers: maxWorkers,
		inFlight:   make(map[string]context.CancelFunc),
	}
}

// Submit runs fn(ctx) in the background, keyed by identity. A
// duplicate submission for an identity already in flight is ignored.
// If the pool is already at capacity, the oldest in-flight submission
// is cancelled to make room; a cancelled solve leaves the store
// coherent but may leave the position unresolved.
func (p *Pool) Submit(identity string, fn func(ctx context.Context)) {
	p.mu.Lock()
	if _, inFlight := p.inFlight[identity]; inFlight {
		p.mu.Unlock()
		return
	}
	if len(p.inFlight) >= p.maxWorkers {
		oldest := p.order[0]
		p.order = p.order[1:]
		if cancel, ok := p.inFlight[oldest]; ok {
			cancel()
			delete(p.inFlight, oldest)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.inFlight[identity] = cancel
	p.order = append(p.order, identity)
	p.mu.Unlock()

	p.group.Go(func() error {
		defer func() {
			p.mu.Lock()
			if p.inFlight[identity] != nil {
				delete(p.inFlight, identity)
				p.order = removeIdentity(p.order, identity)
			}
			p.mu.Unlock()
			cancel()
		}()
		fn(ctx)
		return nil
	})
}

// InFlight reports whether identity currently has a background
// submission running.
func (p *Pool) InFlight(identity string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inFlight[identity]
	return ok
}

// Wait blocks until every submitted task has returned. Intended for
// graceful shutdown and tests; a live HTTP server does not normally
// call it.
func (p *Pool) Wait() {
	_ = p.group.Wait()
}

func removeIdentity(order []string, identity string) []string {
	for i, id := range order {
		if id == identity {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
