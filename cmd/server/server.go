package main

import (
	"time"

	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/internal/infrastructure"
	"github.com/JaimeStill/pdfdesk/pkg/httpserver"
)

// Server is the processing service: the API module plus health and metrics
// endpoints behind one HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpserver.Server
}

// NewServer wires infrastructure, modules, and the listener from cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg, infrastructure.Options{})
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	opts := httpserver.Options{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeoutDuration(),
		WriteTimeout:    cfg.Server.WriteTimeoutDuration(),
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
	}

	return &Server{
		infra:   infra,
		modules: modules,
		http:    httpserver.New(opts, router, infra.Logger),
	}, nil
}

// Start runs infrastructure startup hooks and begins serving.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup failed", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops serving and runs teardown hooks within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
