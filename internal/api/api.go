// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/internal/infrastructure"
	"github.com/JaimeStill/pdfdesk/pkg/middleware"
	"github.com/JaimeStill/pdfdesk/pkg/module"
	"github.com/JaimeStill/pdfdesk/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	patterns := registerRoutes(mux, domain, runtime)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	runtime.Logger.Info("routes registered", "prefix", cfg.API.BasePath, "patterns", patterns)

	metrics := middleware.NewMetrics(runtime.Metrics)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(metrics.Middleware("api"))

	return m, nil
}
