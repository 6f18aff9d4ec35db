package llm

import (
	"context"
	"errors"
	"testing"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) Complete(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) Name() string { return "stub" }

func TestInstrumentedPassesThrough(t *testing.T) {
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	meter := metricnoop.NewMeterProvider().Meter("test")

	ok := &stubClient{reply: "fine"}
	c, err := Instrument(ok, tracer, meter)
	if err != nil {
		t.Fatalf("Instrument failed: %v", err)
	}
	reply, err := c.Complete(context.Background(), Request{})
	if err != nil || reply != "fine" {
		t.Errorf("got %q, %v", reply, err)
	}
	if c.Name() != "stub" {
		t.Errorf("Name = %q", c.Name())
	}

	failing := &stubClient{err: &APIError{Err: errors.New("down")}}
	c, _ = Instrument(failing, tracer, meter)
	if _, err := c.Complete(context.Background(), Request{}); !errors.Is(err, ErrAPIFailure) {
		t.Errorf("expected ErrAPIFailure, got %v", err)
	}
	if failing.calls != 1 {
		t.Errorf("calls = %d", failing.calls)
	}
}
