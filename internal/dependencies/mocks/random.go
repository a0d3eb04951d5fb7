package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/padel-tournament/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// It is safe for use by concurrent HTTP handlers.
type MockRandom struct {
	mu sync.Mutex
	// Tokens is a queue of results to return from Token
	Tokens []string
	index  int
	issued int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued token. Once the queue is exhausted it returns
// distinct tokens of the form "token-N".
func (r *MockRandom) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.issued++
	if r.index >= len(r.Tokens) {
		return fmt.Sprintf("token-%d", r.issued)
	}
	result := r.Tokens[r.index]
	r.index++
	return result
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tokens = append(r.Tokens, values...)
}
