package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moodwell/internal/api"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger
	logger.Info("Starting moodwell v%s", version)

	srv, err := api.NewServer(ctx, api.Deps{
		Sessions:  a.sessions,
		Chat:      a.chat,
		Journal:   a.journal,
		Reflector: a.reflector,
		Game:      a.game,
		Nudges:    a.nudges,
		Personas:  a.personas,
		Provider:  a.client.Name(),
		Logger:    logger.Component("api"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize API server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.BindAddress, a.cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // model replies can be slow
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening on http://%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("shutdown did not complete cleanly")
	}
	logger.Info("moodwell stopped")
	return nil
}
