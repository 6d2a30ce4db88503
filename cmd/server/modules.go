package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/pdfdesk/internal/api"
	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/internal/infrastructure"
	"github.com/JaimeStill/pdfdesk/pkg/handlers"
	"github.com/JaimeStill/pdfdesk/pkg/module"
)

// Modules holds the path-prefixed modules served by the processing server.
type Modules struct {
	API *module.Module
}

// NewModules creates all modules from infrastructure and config.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}))

	router.HandleNative("GET /metrics", promhttp.HandlerFor(infra.Metrics, promhttp.HandlerOpts{}))

	return router
}
