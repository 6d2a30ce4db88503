package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/pkg/httpserver"
	"github.com/JaimeStill/pdfdesk/pkg/middleware"
	"github.com/JaimeStill/pdfdesk/pkg/module"
	"github.com/JaimeStill/pdfdesk/pkg/routes"
)

// startPreview serves the live results of viewers on client.preview_addr
// and returns the server's base URL. The server stops with the session.
func startPreview(s *session, viewers ...*results.Viewer) (string, error) {
	logger := s.infra.Logger

	mux := http.NewServeMux()
	routes.Register(mux, results.NewHandler(logger, viewers...).Routes())

	m := module.New("/results", mux)
	m.Use(middleware.Recover(logger))
	m.Use(middleware.Logger(logger))

	router := module.NewRouter()
	router.Mount(m)

	srv := httpserver.New(httpserver.Options{
		Addr:            s.cfg.Client.PreviewAddr,
		ShutdownTimeout: s.cfg.ShutdownTimeoutDuration(),
	}, router, logger)

	if err := srv.Start(s.infra.Lifecycle); err != nil {
		return "", fmt.Errorf("start preview server: %w", err)
	}
	return "http://" + srv.Addr(), nil
}

// servePreview prints the result links and blocks until interrupted.
func servePreview(cmd *cobra.Command, s *session, h results.Handle, v *results.Viewer) error {
	base, err := startPreview(s, v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "preview:  %s%s\n", base, h.Ref())
	fmt.Fprintf(out, "download: %s%s/download\n", base, h.Ref())
	fmt.Fprintln(out, "press ctrl+c to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
