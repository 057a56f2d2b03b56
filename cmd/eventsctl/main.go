package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"eventeditor/config"
	"eventeditor/internal/adapters/auth"
	"eventeditor/internal/adapters/eventsapi"
	"eventeditor/internal/cli"
	"eventeditor/internal/notify"
	"eventeditor/internal/services"
)

func main() {
	logger := config.NewCLILogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	apiCfg := eventsapi.Config{BaseURL: cfg.APIBaseURL, Subject: "eventsctl"}
	if cfg.APIJWTSecret != "" {
		apiCfg.Issuer = auth.NewJWTIssuer(cfg.APIJWTSecret)
	}
	api := eventsapi.NewClient(&http.Client{Timeout: 30 * time.Second}, apiCfg)
	reporter := notify.NewReporter(logger, notify.WriterSink{Out: os.Stdout, Err: os.Stderr})

	app := &cli.App{
		Editor: services.NewEditor(api, reporter, logger),
		Hasher: auth.NewBcryptHasher(0),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
