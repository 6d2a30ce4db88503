package httpserver_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/pdfdesk/pkg/httpserver"
	"github.com/JaimeStill/pdfdesk/pkg/lifecycle"
)

func TestServeAndShutdown(t *testing.T) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httpserver.New(
		httpserver.Options{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "ok")
		}),
		logger,
	)
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body: got %q", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server should refuse connections after shutdown")
	}
}

func TestStartBindFailure(t *testing.T) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := httpserver.New(httpserver.Options{Addr: "127.0.0.1:0"}, http.NotFoundHandler(), logger)
	if err := first.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer lc.Shutdown(time.Second)

	second := httpserver.New(httpserver.Options{Addr: first.Addr()}, http.NotFoundHandler(), logger)
	if err := second.Start(lifecycle.New()); err == nil {
		t.Error("expected bind error on an occupied address")
	}
}
