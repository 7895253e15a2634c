package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/account"
	"utilityBillingPortal/internal/billing"
	"utilityBillingPortal/internal/config"
	"utilityBillingPortal/internal/console"
	"utilityBillingPortal/internal/csvio"
	"utilityBillingPortal/internal/db"
	"utilityBillingPortal/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.LogLevel)

	d, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	accounts := account.NewDirectory(d, cfg.JWTSecret, 24*time.Hour, log)
	if err := accounts.EnsureDefaultAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed default admin")
	}

	ledger := billing.NewLedger(d, cfg.CostPerKWh, log)
	csvAdapter := csvio.NewAdapter(d, log)

	shell := console.New(os.Stdin, os.Stdout, accounts, ledger, csvAdapter, report.PlotRenderer{}, cfg, log)
	if err := shell.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("shell exited")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
