package llm

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrumented wraps a Client with a span per call, a latency histogram and
// a failure counter.
type Instrumented struct {
	next     Client
	tracer   trace.Tracer
	latency  metric.Float64Histogram
	failures metric.Int64Counter
}

// Instrument wraps next using tracer and meter
func Instrument(next Client, tracer trace.Tracer, meter metric.Meter) (*Instrumented, error) {
	latency, err := meter.Float64Histogram(
		"llm.request.duration",
		metric.WithDescription("Completion request latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create latency histogram: %w", err)
	}
	failures, err := meter.Int64Counter(
		"llm.request.failures",
		metric.WithDescription("Failed completion requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure counter: %w", err)
	}
	return &Instrumented{next: next, tracer: tracer, latency: latency, failures: failures}, nil
}

func (c *Instrumented) Complete(ctx context.Context, req Request) (string, error) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", c.next.Name()),
		attribute.Int("llm.max_tokens", req.MaxTokens),
		attribute.Bool("llm.structured", req.Schema != nil),
	}
	ctx, span := c.tracer.Start(ctx, "llm.complete", trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	reply, err := c.next.Complete(ctx, req)
	c.latency.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs[0]))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.failures.Add(ctx, 1, metric.WithAttributes(attrs[0]))
		return "", err
	}
	span.SetAttributes(attribute.Int("llm.response_length", len(reply)))
	return reply, nil
}

func (c *Instrumented) Name() string {
	return c.next.Name()
}
