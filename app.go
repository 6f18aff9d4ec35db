package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"moodwell/internal/chat"
	"moodwell/internal/config"
	"moodwell/internal/journal"
	"moodwell/internal/kv"
	"moodwell/internal/llm"
	"moodwell/internal/logging"
	"moodwell/internal/lowlands"
	"moodwell/internal/mood"
	"moodwell/internal/nudge"
	"moodwell/internal/sessions"
	"moodwell/internal/telemetry"
)

// app is the fully wired process state
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	db        *kv.Store
	telemetry *telemetry.Provider
	client    llm.Client
	personas  *mood.Registry
	sessions  *sessions.Store
	chat      *chat.Service
	journal   *journal.Store
	reflector *journal.Reflector
	game      *lowlands.Game
	nudges    *nudge.Picker

	closers []io.Closer
}

// newApp loads config and wires every component, logging to console. The
// persona watcher, when enabled, runs until ctx is done.
func newApp(ctx context.Context, path string, console io.Writer) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.Setup("main", logging.Options{
		Level:        cfg.Logging.Level,
		DebugEnabled: cfg.Logging.DebugEnabled,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		Console:      console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	a.telemetry, err = telemetry.Setup(ctx, telemetry.Options{
		Enabled: cfg.Telemetry.Enabled,
		Dir:     cfg.Telemetry.Dir,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	a.db, err = kv.Open(cfg.Storage.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.closers = append(a.closers, a.db)
	logger.WithContext("path", cfg.Storage.Path).Info("storage opened")

	a.client, err = a.buildClient()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.personas = mood.NewRegistry()
	if cfg.Personas.File != "" {
		personaLog := logger.Component("personas")
		if err := a.personas.LoadFile(cfg.Personas.File); err != nil {
			personaLog.WithError(err).Warn("using built-in personas")
		}
		if cfg.Personas.Watch {
			if err := a.personas.Watch(ctx, cfg.Personas.File, personaLog); err != nil {
				personaLog.WithError(err).Warn("persona reload disabled")
			}
		}
	}

	a.sessions = sessions.NewStore(ctx, a.db, logger.Component("sessions"))
	a.chat = chat.NewService(a.sessions, a.personas, a.client, logger.Component("chat"))

	a.journal = journal.NewStore(ctx, a.db, logger.Component("journal"))
	var opts []journal.ReflectorOption
	if cfg.Journal.StructuredOutput {
		opts = append(opts, journal.WithStructuredOutput())
	}
	a.reflector = journal.NewReflector(a.journal, a.client, logger.Component("journal"), opts...)

	a.game = lowlands.NewGame(ctx, a.db, logger.Component("lowlands"))
	a.nudges = nudge.NewPicker()

	return a, nil
}

func (a *app) buildClient() (llm.Client, error) {
	var base llm.Client
	if a.cfg.UsesMock() {
		a.logger.Warn("no API key configured, using mock responses")
		base = &llm.MockClient{Delay: time.Second}
	} else {
		base = llm.NewOpenAIClient(llm.OpenAIConfig{
			BaseURL: a.cfg.Provider.BaseURL,
			APIKey:  a.cfg.Provider.APIKey,
			Model:   a.cfg.Provider.Model,
		}, a.logger.Component("llm"))
	}

	client, err := llm.Instrument(base, a.telemetry.Tracer, a.telemetry.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument model client: %w", err)
	}
	a.logger.WithFields(logging.Fields{"provider": client.Name(), "model": a.cfg.Provider.Model}).Info("model client ready")
	return client, nil
}

// Close flushes telemetry and releases storage and log files
func (a *app) Close() {
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(context.Background()); err != nil {
			a.logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}
