package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupDisabledReturnsNoop(t *testing.T) {
	p, err := Setup(context.Background(), Options{Enabled: false, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if p.Tracer == nil || p.Meter == nil {
		t.Fatal("expected tracer and meter on noop provider")
	}

	_, span := p.Tracer.Start(context.Background(), "noop")
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown of noop provider failed: %v", err)
	}
}

func TestSetupWritesTraces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "telemetry")
	p, err := Setup(context.Background(), Options{Enabled: true, Dir: dir})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	_, span := p.Tracer.Start(context.Background(), "test.span")
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "traces.log"))
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected trace output after shutdown flush")
	}
}
