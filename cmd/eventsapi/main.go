// @title Events API
// @version 1.0
// @description Stores the events managed by the event editor.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventeditor/config"
	_ "eventeditor/docs"
	"eventeditor/internal/adapters/auth"
	delivery "eventeditor/internal/delivery/http"
	"eventeditor/internal/delivery/http/controllers"
	"eventeditor/internal/delivery/http/middleware"
	"eventeditor/internal/repository/postgres"
	"eventeditor/internal/services"

	_ "github.com/lib/pq"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("events api stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	eventRepo := postgres.NewEventRepository(db)
	eventService := services.NewEventService(eventRepo, cfg.RequestTimeout)
	eventController := controllers.NewEventController(logger, eventService)

	var protect func(http.Handler) http.Handler
	if cfg.APIJWTSecret != "" {
		verifier := auth.NewJWTVerifier(cfg.APIJWTSecret)
		protect = func(next http.Handler) http.Handler {
			return middleware.RequireAuth(verifier, logger, next)
		}
	} else {
		logger.Warn("API_JWT_SECRET is empty, /api/events is not protected")
	}

	router := delivery.NewAPIRouter(eventController, protect)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, router))

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("events api listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
