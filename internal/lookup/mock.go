package lookup

import (
	"context"
	"errors"
	"sync"

	"mealsearch/internal/domain"
)

// ErrMockNotImplemented is returned when a MockClient has no SearchFn.
var ErrMockNotImplemented = errors.New("lookup.MockClient: SearchFn not set")

// MockClient is a test double for Client.
type MockClient struct {
	SearchFn func(context.Context, string) ([]domain.Candidate, error)

	mu              sync.Mutex
	SearchCallCount int
	SearchCallArgs  []string
}

// Search records the call and delegates to SearchFn.
func (m *MockClient) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	m.mu.Lock()
	m.SearchCallCount++
	m.SearchCallArgs = append(m.SearchCallArgs, query)
	fn := m.SearchFn
	m.mu.Unlock()

	if fn == nil {
		return nil, ErrMockNotImplemented
	}
	return fn(ctx, query)
}

// Queries returns a copy of the queries seen so far.
func (m *MockClient) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SearchCallArgs...)
}

// StaticResults builds a SearchFn answering from a fixed table; unknown
// queries return no matches.
func StaticResults(table map[string][]domain.Candidate) func(context.Context, string) ([]domain.Candidate, error) {
	return func(_ context.Context, query string) ([]domain.Candidate, error) {
		return append([]domain.Candidate{}, table[query]...), nil
	}
}
