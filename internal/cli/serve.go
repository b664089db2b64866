package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloghq/blogapi/internal/api"
	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/logger"
	"github.com/bloghq/blogapi/internal/scheduler"
	"github.com/bloghq/blogapi/internal/services"
)

var (
	serveHost       string
	servePort       int
	serveCORSOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blog REST API server",
	Long: `Start the HTTP server with the full blog API: auth, users, posts
and categories. Scheduled posts are published in the background while the
server runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "Host to bind to (overrides HOST)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVarP(&serveCORSOrigin, "cors-origin", "c", "", "CORS origin to allow (overrides CORS_ORIGIN)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveHost != "" {
		settings.Host = serveHost
	}
	if servePort != 0 {
		settings.Port = servePort
	}
	if serveCORSOrigin != "" {
		settings.CORSOrigin = serveCORSOrigin
	}

	store, err := db.New(settings)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Disconnect(ctx)

	sched := scheduler.New(services.NewPostService(store))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	server := &http.Server{
		Addr:              settings.Addr(),
		Handler:           api.NewServer(settings, store).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("%s listening on http://%s%s", settings.AppName, settings.Addr(), settings.APIV1Prefix)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
