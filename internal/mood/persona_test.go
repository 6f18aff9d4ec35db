package mood

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"moodwell/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFileOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	writeFile(t, path, `
personas:
  happy:
    name: Dr. Sunshine
    system_prompt: |
      Be bright.
`)

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	p := r.Persona(Happy)
	if p.Name != "Dr. Sunshine" {
		t.Errorf("name not overridden: %q", p.Name)
	}
	if p.SystemPrompt != "Be bright.\n" {
		t.Errorf("prompt not overridden: %q", p.SystemPrompt)
	}
	if p.Specialty != builtinPersonas[Happy].Specialty {
		t.Errorf("specialty should keep built-in value, got %q", p.Specialty)
	}
	if r.Persona(Focused).Name != "Dr. Flow" {
		t.Error("untouched persona changed")
	}
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry()

	tests := map[string]string{
		"unknown mood": "personas:\n  grumpy:\n    name: X\n",
		"bad yaml":     "personas: [unterminated",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			writeFile(t, path, content)
			if err := r.LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
			if r.Persona(Happy).Name != "Dr. Joy" {
				t.Error("failed load must not change personas")
			}
		})
	}

	if err := r.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	writeFile(t, path, "personas: {}\n")

	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Watch(ctx, path, logging.Discard()); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	writeFile(t, path, "personas:\n  neutral:\n    name: Dr. Steady\n")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if r.Persona(Neutral).Name == "Dr. Steady" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("persona not reloaded, still %q", r.Persona(Neutral).Name)
}
