package routes_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/pdfdesk/pkg/routes"
)

func TestRegisterNestedGroups(t *testing.T) {
	var hit string
	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hit = name
			w.WriteHeader(http.StatusOK)
		}
	}

	mux := http.NewServeMux()
	patterns := routes.Register(mux, routes.Group{
		Prefix: "/results",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: handler("preview")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/download", Handler: handler("download")},
				},
			},
		},
	})

	want := []string{"GET /results/{id}", "GET /results/{id}/download"}
	if !slices.Equal(patterns, want) {
		t.Errorf("patterns: got %v, want %v", patterns, want)
	}

	tests := []struct {
		path string
		want string
	}{
		{"/results/abc", "preview"},
		{"/results/abc/download", "download"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hit = ""
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			if hit != tt.want {
				t.Errorf("handler: got %q, want %q", hit, tt.want)
			}
		})
	}
}
