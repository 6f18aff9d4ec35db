package mood

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Persona is the therapist a mood selects
type Persona struct {
	Name         string `yaml:"name" json:"name"`
	Specialty    string `yaml:"specialty" json:"specialty"`
	SystemPrompt string `yaml:"system_prompt" json:"-"`
	Greeting     string `yaml:"greeting" json:"greeting"`
}

// overrideFile is the YAML layout accepted by LoadFile:
//
//	personas:
//	  happy:
//	    name: Dr. Sunshine
//	    system_prompt: |
//	      ...
type overrideFile struct {
	Personas map[string]Persona `yaml:"personas"`
}

// Registry resolves moods to personas. Built-ins can be overridden field by
// field from a YAML file and swapped at runtime.
type Registry struct {
	mu       sync.RWMutex
	personas map[Mood]Persona
}

// NewRegistry returns a registry holding the built-in personas
func NewRegistry() *Registry {
	return &Registry{personas: builtinPersonas}
}

// Persona returns the persona for m, falling back to Neutral for unknown moods
func (r *Registry) Persona(m Mood) Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.personas[m]; ok {
		return p
	}
	return r.personas[Neutral]
}

// LoadFile rebuilds the table from the built-ins plus the overrides in path.
// On any error the current table is left untouched.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read personas file: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse personas file: %w", err)
	}

	next := make(map[Mood]Persona, len(builtinPersonas))
	for m, p := range builtinPersonas {
		next[m] = p
	}
	for key, o := range f.Personas {
		m, err := Parse(key)
		if err != nil {
			return fmt.Errorf("personas file: %w", err)
		}
		next[m] = merge(next[m], o)
	}

	r.mu.Lock()
	r.personas = next
	r.mu.Unlock()
	return nil
}

func merge(base, o Persona) Persona {
	if o.Name != "" {
		base.Name = o.Name
	}
	if o.Specialty != "" {
		base.Specialty = o.Specialty
	}
	if o.SystemPrompt != "" {
		base.SystemPrompt = o.SystemPrompt
	}
	if o.Greeting != "" {
		base.Greeting = o.Greeting
	}
	return base
}
