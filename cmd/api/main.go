//	@title			BucketCMS API
//	@version		1.0
//	@description	Headless content store that keeps every item as a JSON object in an S3-compatible bucket.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token from /auth/login. Format: **Bearer {token}**

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/api"
	"github.com/bucketcms/service/internal/app"
	"github.com/bucketcms/service/internal/config"
	"github.com/bucketcms/service/internal/logging"

	_ "github.com/bucketcms/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.EnvFileLoaded {
		log.Info("no .env file found, reading from environment")
	}
	if problems := cfg.Problems(); len(problems) > 0 {
		log.Fatal("invalid configuration", zap.String("problems", strings.Join(problems, "; ")))
	}
	if !cfg.AuthEnabled() {
		log.Warn("authentication disabled (APP_ENV=development without USE_SANDBOX)")
	}

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(a),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		log.Info("swagger UI at http://localhost:" + cfg.Port + "/swagger/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
