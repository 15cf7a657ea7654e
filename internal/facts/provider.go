// Package facts provides the fact provider abstraction: given a topic,
// asynchronously produce a short descriptive text. Providers make a single
// attempt; retry and timeout policy belong to the individual provider, never
// to the interaction core, which only performs a staleness check on the
// result.
package facts

import (
	"context"
	"errors"
)

// ErrNoFact is returned when a provider has nothing to say about a topic.
var ErrNoFact = errors.New("no fact available for topic")

// Provider produces a fact text for a topic. Implementations must be safe
// for concurrent use.
type Provider interface {
	RequestFact(ctx context.Context, topic string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, topic string) (string, error)

// RequestFact calls f.
func (f ProviderFunc) RequestFact(ctx context.Context, topic string) (string, error) {
	return f(ctx, topic)
}
