package facts

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// HTTPProvider fetches facts from a remote generation service. It POSTs
// {"topic": ...} and expects {"fact": ...} back. One attempt, no retries.
type HTTPProvider struct {
	client *resty.Client
	url    string
}

type factRequest struct {
	Topic string `json:"topic"`
}

type factResponse struct {
	Fact  string `json:"fact"`
	Error string `json:"error,omitempty"`
}

// NewHTTPProvider creates an HTTPProvider for the given endpoint URL.
func NewHTTPProvider(url string) *HTTPProvider {
	client := resty.New()
	client.SetRetryCount(0)

	return &HTTPProvider{
		client: client,
		url:    url,
	}
}

// RequestFact asks the remote service for a fact about the topic.
func (p *HTTPProvider) RequestFact(ctx context.Context, topic string) (string, error) {
	var result factResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(factRequest{Topic: topic}).
		SetResult(&result).
		Post(p.url)
	if err != nil {
		return "", fmt.Errorf("fact request failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("fact service returned status %d", resp.StatusCode())
	}

	if result.Error != "" {
		return "", fmt.Errorf("fact service error: %s", result.Error)
	}

	if result.Fact == "" {
		return "", ErrNoFact
	}

	return result.Fact, nil
}
