package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/cardio-onc/qtwizard/pkg/adapters/http"
	"github.com/cardio-onc/qtwizard/pkg/adapters/mcp"
)

// ShutdownTimeout bounds graceful server shutdown.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP API on addr until ctx is done.
func Serve(ctx context.Context, app *App, addr string) error {
	handler := httpAdapter.NewHandler(app.Document.Registry,
		httpAdapter.WithLogger(app.Logger),
		httpAdapter.WithLifecycleHooks(app.Hooks()),
		httpAdapter.WithGatherer(app.Gatherer),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("starting HTTP server", "addr", addr, "steps", app.Document.Registry.Len())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		app.Logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		return nil
	}
}

// ServeMCP exposes one wizard session over the configured MCP transport.
func ServeMCP(ctx context.Context, app *App) error {
	w, err := app.NewWizard()
	if err != nil {
		return fmt.Errorf("error initializing wizard: %w", err)
	}
	defer w.Close()

	srv := mcp.NewServer(w, mcp.WithLogger(app.Logger))
	switch app.Config.MCP.Transport {
	case "sse":
		return srv.ServeSSE(ctx, app.Config.MCP.Addr)
	default:
		app.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	}
}
