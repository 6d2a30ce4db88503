package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/pdfdesk/internal/config"
	"github.com/JaimeStill/pdfdesk/internal/pdfops"
	"github.com/JaimeStill/pdfdesk/pkg/openapi"
	"github.com/JaimeStill/pdfdesk/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) []string {
	return routes.Register(
		mux,
		domain.PDF.Handler(runtime.MaxUploadSize).Routes(),
	)
}

func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.AddPaths("", pdfops.Spec())

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
