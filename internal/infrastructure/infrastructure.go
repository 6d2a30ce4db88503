// Package infrastructure provides core service initialization for application startup.
// It assembles the common dependencies (logging, storage, metrics) that the
// processing server and the client sessions require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, result storage, and metrics.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Metrics   *prometheus.Registry
}

// Options tune infrastructure construction for a particular binary.
type Options struct {
	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer
	// LogLevel is the minimum level recorded.
	LogLevel slog.Level
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config, opts Options) (*Infrastructure, error) {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.LogLevel}))

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Metrics:   reg,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
