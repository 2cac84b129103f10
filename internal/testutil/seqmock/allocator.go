package seqmock

import (
	"context"
	"sync"

	"loanledger/internal/domain/sequence"
)

var _ sequence.Allocator = (*Allocator)(nil)

// Allocator is an in-memory counter per class, safe for concurrent use.
type Allocator struct {
	mu   sync.Mutex
	next map[string]uint64
}

func New() *Allocator { return &Allocator{next: make(map[string]uint64)} }

func (a *Allocator) Next(_ context.Context, class string) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next[class]++
	return a.next[class], nil
}
