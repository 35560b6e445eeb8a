package usecase

import (
	"context"
	"sync"
)

// Latest is a caller-owned slot for the newest search outcome.
// Each search is registered with Begin before it starts; when overlapping searches finish,
// only the outcome of the most recently begun one is kept. Beginning a search cancels the
// context of the one it supersedes.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current Outcome
	has     bool
}

// Begin reserves the next token and returns a context for the new search derived from ctx.
func (l *Latest) Begin(ctx context.Context) (uint64, context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	searchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return l.seq, searchCtx
}

// Offer stores o if its token is the newest begun and reports whether it was kept.
// Stale outcomes are discarded.
func (l *Latest) Offer(o Outcome) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if o.Token != l.seq {
		return false
	}
	l.current = o
	l.has = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Current returns the stored outcome, if any.
func (l *Latest) Current() (Outcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.has
}

// Close cancels the search in flight, if any.
func (l *Latest) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
