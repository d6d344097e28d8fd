// Command mcpgate serves a fixed set of tools and read-only resources over
// the MCP JSON-RPC protocol, reachable through an SSE push stream and a
// unary POST endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcpgate/mcpgate/internal/config"
	"github.com/mcpgate/mcpgate/internal/dispatch"
	"github.com/mcpgate/mcpgate/internal/resource"
	"github.com/mcpgate/mcpgate/internal/session"
	"github.com/mcpgate/mcpgate/internal/tool"
	"github.com/mcpgate/mcpgate/internal/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("gateway exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tools := tool.NewRegistry()
	if err := tool.RegisterBuiltins(tools); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	resources := resource.NewRegistry()
	seedResources(resources, cfg)

	dispatcher := dispatch.New(
		dispatch.Info{Name: cfg.ServiceName, Version: cfg.ServiceVersion},
		tools,
		resources,
		session.NewStore(),
		dispatch.WithLogger(logger),
	)

	stream := transport.NewStream(dispatcher, transport.StreamConfig{
		MessagePath:      cfg.MessagePath,
		PingInterval:     cfg.PingInterval,
		ExecutionCeiling: cfg.ExecutionCeiling,
		ShutdownMargin:   cfg.ShutdownMargin,
		Logger:           logger,
	})
	unary := transport.NewUnary(dispatcher, logger)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: transport.NewRouter(transport.RouterConfig{
			SSEPath:     cfg.SSEPath,
			MessagePath: cfg.MessagePath,
		}, stream.Handler(), unary.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("gateway listening",
			"addr", cfg.Addr,
			"ssePath", cfg.SSEPath,
			"messagePath", cfg.MessagePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func seedResources(r *resource.Registry, cfg config.Config) {
	r.Add(resource.Descriptor{
		URI:         "docs://mcpgate/overview",
		Name:        "Gateway overview",
		Description: "What this gateway exposes and how to reach it.",
	}, fmt.Sprintf(`# %s

This gateway exposes remotely invokable tools and read-only resources
over JSON-RPC.

- Open a stream at `+"`GET %s`"+` to receive the handshake and keep-alives.
- Send requests to `+"`POST %s`"+`.
`, cfg.ServiceName, cfg.SSEPath, cfg.MessagePath))

	r.Add(resource.Descriptor{
		URI:         "docs://mcpgate/tools",
		Name:        "Tool usage",
		Description: "How to invoke tools and interpret tool failures.",
	}, `# Tool usage

Call tools with the `+"`tools/call`"+` method. A failed tool run comes back
as a successful envelope whose result carries `+"`isError: true`"+` and a
textual error payload; protocol-level errors only signal transport or
routing faults.
`)
}
