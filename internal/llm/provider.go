// Package llm is the boundary to the hosted chat-completion service.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client sends one completion request and returns the reply text
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Message is a role-tagged turn sent to the model
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is a single completion call. The system prompt is sent first,
// followed by Messages in order.
type Request struct {
	SystemPrompt string
	Messages     []Message
	Temperature  float64
	MaxTokens    int
	// Schema, when set, asks the endpoint for JSON matching it
	Schema *Schema
}

// Schema names a JSON Schema document for structured output
type Schema struct {
	Name        string
	Description string
	Definition  map[string]interface{}
}

// UserTurn builds a request carrying one user message
func UserTurn(systemPrompt, content string, temperature float64, maxTokens int) Request {
	return Request{
		SystemPrompt: systemPrompt,
		Messages:     []Message{{Role: "user", Content: content}},
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	}
}

// ErrAPIFailure matches every failed completion: transport errors, non-2xx
// responses and replies without a choice.
var ErrAPIFailure = errors.New("API call failed")

// APIError describes a failed completion
type APIError struct {
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", ErrAPIFailure, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrAPIFailure, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrAPIFailure) hold for every APIError
func (e *APIError) Is(target error) bool {
	return target == ErrAPIFailure
}
