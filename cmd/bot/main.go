package main

import (
	"context"
	"os"

	// Embed the IANA timezone database so conversions work in minimal
	// container images without tzdata installed.
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/app"
	"github.com/m4rv1n33/discord-unix-bot/internal/config"
	"github.com/m4rv1n33/discord-unix-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
