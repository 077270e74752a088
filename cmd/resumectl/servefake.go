package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/resumeanalyzer/internal/fakeapi"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// NewServeFakeCmd runs the in-memory backend for local development.
func NewServeFakeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:    "serve-fake",
		Short:  "Serve an in-memory analyzer API for local testing",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			log := logging.NewTextLogger(cmd.ErrOrStderr(), level)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return serveFake(cmd.Context(), ln, fakeapi.New(fakeapi.WithLogger(log)), log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	return cmd
}

// serveFake serves h on ln until ctx is done.
func serveFake(ctx context.Context, ln net.Listener, h http.Handler, log logging.Logger) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Info(ctx, "fake api listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
