package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventeditor/config"
	"eventeditor/internal/adapters/auth"
	"eventeditor/internal/adapters/email"
	"eventeditor/internal/adapters/eventsapi"
	"eventeditor/internal/delivery/http/middleware"
	"eventeditor/internal/delivery/http/web"
	"eventeditor/internal/domain"
	"eventeditor/internal/notify"
	"eventeditor/internal/services"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("editor stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	apiCfg := eventsapi.Config{BaseURL: cfg.APIBaseURL, Subject: "editor"}
	if cfg.APIJWTSecret != "" {
		apiCfg.Issuer = auth.NewJWTIssuer(cfg.APIJWTSecret)
	}
	api := eventsapi.NewClient(&http.Client{}, apiCfg)

	sinks := []domain.NoticeSink{notify.InboxSink{}}
	if cfg.NotifyEmailTo != "" {
		renderer, err := email.NewTemplateRenderer()
		if err != nil {
			return err
		}
		mailer := email.NewMailer(email.MailerConfig{
			Provider:    cfg.EmailProvider,
			FromAddress: cfg.EmailFrom,
			FromName:    cfg.EmailFromName,
			SES: email.SESConfig{
				Region:          cfg.AWSRegion,
				AccessKeyID:     cfg.AWSAccessKeyID,
				SecretAccessKey: cfg.AWSSecretAccessKey,
			},
		}, logger)
		sinks = append(sinks, notify.NewMailSink(mailer, renderer, cfg.NotifyEmailTo))
	}
	editor := services.NewEditor(api, notify.NewReporter(logger, sinks...), logger)

	pages, err := web.NewHandler(editor, logger, time.Monday)
	if err != nil {
		return err
	}
	var handler http.Handler = pages.Routes()
	if cfg.EditorUser != "" {
		handler = middleware.BasicAuth(cfg.EditorUser, cfg.EditorPasswordHash, auth.NewBcryptHasher(0), handler)
	} else {
		logger.Warn("EDITOR_USER is empty, the editor is not protected")
	}
	handler = middleware.LoggingMiddleware(logger, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pages show "Loading..." until the initial fetch settles.
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_ = editor.Load(loadCtx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("editor listening", "addr", srv.Addr, "api", cfg.APIBaseURL)
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
