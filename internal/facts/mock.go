package facts

import (
	"context"
	"sync"
)

// MockProvider is a test implementation of the Provider interface. It allows
// tests to control results and, via Block, to hold a request open until the
// test releases it.
type MockProvider struct {
	mu    sync.Mutex
	facts map[string]string
	err   error
	block chan struct{}
	calls []string
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{facts: make(map[string]string)}
}

// SetFact sets the fact returned for a topic.
func (m *MockProvider) SetFact(topic, fact string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facts[topic] = fact
}

// SetError sets the error returned by RequestFact for every topic.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes subsequent requests wait until Release is called.
func (m *MockProvider) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = make(chan struct{})
}

// Release unblocks all requests currently waiting in Block mode.
func (m *MockProvider) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.block != nil {
		close(m.block)
		m.block = nil
	}
}

// Calls returns the topics requested so far, in order.
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// RequestFact returns the pre-configured fact or error, blocking first if
// Block mode is active.
func (m *MockProvider) RequestFact(ctx context.Context, topic string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, topic)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}

	fact, ok := m.facts[topic]
	if !ok {
		return "", ErrNoFact
	}
	return fact, nil
}
