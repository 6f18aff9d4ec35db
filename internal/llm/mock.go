package llm

import (
	"context"
	"time"
)

// MockReply is what MockClient answers with
const MockReply = "I'm here to support you. This is a mock response - please configure your IO Intelligence API key to get real therapeutic responses."

// MockClient answers every request with MockReply after Delay. It stands in
// for the hosted endpoint when no API key is configured.
type MockClient struct {
	Delay time.Duration
}

func (m *MockClient) Complete(ctx context.Context, req Request) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", &APIError{Err: ctx.Err()}
		}
	}
	return MockReply, nil
}

func (m *MockClient) Name() string {
	return "mock"
}
