package mocks

import (
	"context"
	"sync"

	"github.com/you/accountsvc/domain"
)

// MockIdentityLocker implements domain.IdentityLocker interface for testing.
// The default behavior is a real in-memory lock so concurrency tests can
// exercise contention.
type MockIdentityLocker struct {
	AcquireFunc func(ctx context.Context, key string) (bool, error)
	ReleaseFunc func(ctx context.Context, key string) error

	mu   sync.Mutex
	held map[string]bool
}

// NewMockIdentityLocker creates a new MockIdentityLocker with default behaviors
func NewMockIdentityLocker() *MockIdentityLocker {
	return &MockIdentityLocker{held: make(map[string]bool)}
}

func (m *MockIdentityLocker) Acquire(ctx context.Context, key string) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *MockIdentityLocker) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	return nil
}

// Compile-time interface compliance verification
var _ domain.IdentityLocker = (*MockIdentityLocker)(nil)
