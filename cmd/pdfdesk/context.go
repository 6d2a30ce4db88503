package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/internal/infrastructure"
	"github.com/JaimeStill/pdfdesk/internal/submission"
	"github.com/JaimeStill/pdfdesk/internal/workflow"
)

type commandContext struct {
	configDirFlag *string
	serverFlag    *string
	verboseFlag   *bool
}

func newCommandContext(configDirFlag, serverFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configDirFlag: configDirFlag,
		serverFlag:    serverFlag,
		verboseFlag:   verboseFlag,
	}
}

func (c *commandContext) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if dir := strings.TrimSpace(*c.configDirFlag); dir != "" {
		cfg, err = config.LoadDir(dir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if server := strings.TrimSpace(*c.serverFlag); server != "" {
		cfg.Client.BaseURL = server
	}
	return cfg, nil
}

// session is one client run: result storage, the submission client, and the
// lifecycle that tears both down.
type session struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	runtime *workflow.Runtime
}

func (c *commandContext) open(cmd *cobra.Command) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	opts := infrastructure.Options{LogOutput: io.Discard}
	if *c.verboseFlag {
		opts.LogOutput = cmd.ErrOrStderr()
		opts.LogLevel = slog.LevelDebug
	}

	infra, err := infrastructure.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		return nil, fmt.Errorf("startup failed: %w", err)
	}

	client, err := submission.NewClient(cfg.Client.BaseURL, cfg.Client.TimeoutDuration(), infra.Logger)
	if err != nil {
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		return nil, err
	}

	return &session{
		cfg:   cfg,
		infra: infra,
		runtime: &workflow.Runtime{
			Client:  client,
			Storage: infra.Storage,
			Logger:  infra.Logger,
		},
	}, nil
}

// track tears down a workflow when the session closes.
func (s *session) track(closeFn func(context.Context) error) {
	s.infra.Lifecycle.OnShutdown(func() error {
		return closeFn(context.Background())
	})
}

func (s *session) close() error {
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
