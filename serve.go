package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sfd-intake/pkg/api"
	"sfd-intake/pkg/clients/sheets"
	"sfd-intake/pkg/config"
	"sfd-intake/pkg/metrics"
	"sfd-intake/pkg/models"
	"sfd-intake/pkg/services"
)

// writeMargin covers validation, JSON encoding and the response write after
// the last store call returns.
const writeMargin = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP intake server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(cfg.Mode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sheetsClient := sheets.NewClient(sheets.Options{
		Endpoint: cfg.Google.Endpoint,
		TokenURL: cfg.Google.TokenURL,
		Timeout:  cfg.Timeout(),
	})

	intakeService := services.NewIntakeService(sheetsClient, cfg, logger, metrics.New(reg))

	for _, v := range models.Variants {
		if missing := cfg.MissingStoreSettings(v); len(missing) > 0 {
			logger.Warn("Google Sheets not configured, submissions will fail",
				zap.String("variant", v.String()),
				zap.Strings("missing", missing),
			)
		}
	}

	handlers := api.NewHandlers(intakeService, logger)
	router := api.NewRouter(handlers, cfg.AllowedOrigins, logger, reg)

	server := newServer(cfg, router)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.WriteTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.Mode))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Error starting server", zap.Error(err))
		return err
	}
	return nil
}

// newServer builds the HTTP server. The write deadline outlasts a submission
// whose every store call runs to the client timeout, so the caller always
// receives the final JSON response.
func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Duration(services.StoreCallsPerSubmission)*cfg.Timeout() + writeMargin,
		IdleTimeout:       60 * time.Second,
	}
}
