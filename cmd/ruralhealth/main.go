package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/api"
	"github.com/terraincognita07/ruralhealth/internal/cli"
	"github.com/terraincognita07/ruralhealth/internal/config"
	"github.com/terraincognita07/ruralhealth/internal/db"
	"github.com/terraincognita07/ruralhealth/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config init failed: %v", err)
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		logrus.Fatalf("logger init failed: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		options, err := parseResetPasswordArgs(os.Args[2:], logger)
		if err != nil {
			logger.Fatalf("reset-password: %v", err)
		}
		if err := cli.RunResetPasswordCommand(context.Background(), cfg, options); err != nil {
			logger.Fatalf("reset-password failed: %v", err)
		}
		return
	}

	if err := serve(cfg, logger); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	location := mustLoadLocation(cfg.TimeZone, logger)
	time.Local = location

	if cfg.SecretGenerated {
		logger.Warn("SECRET_KEY is not set, using a random key; tokens will not survive a restart")
	}

	store, err := db.Open(db.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("close store")
		}
	}()

	handler, err := api.NewHandler(store, api.Options{
		SecretKey:   cfg.SecretKey,
		TokenTTL:    cfg.TokenTTL,
		EnforceAuth: cfg.EnforceAuth,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	admin, created, err := handler.Auth().EnsureAdmin(context.Background(), services.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.WithField("username", admin.Username).Info("created admin account")
	}

	app := api.NewApp(handler, api.AppOptions{
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   true,
	})

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"driver":       cfg.StorageDriver,
		"enforce_auth": cfg.EnforceAuth,
		"tz":           location.String(),
	}).Info("Rural Health Tracker listening")
	return app.Listen(":" + cfg.Port)
}

func newLogger(cfg *config.Config, output io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(level)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

func parseResetPasswordArgs(args []string, logger *logrus.Logger) (cli.ResetPasswordOptions, error) {
	flags := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	username := flags.String("username", "", "account whose password is replaced")
	prompt := flags.Bool("prompt", false, "ask for the new password instead of generating one")
	if err := flags.Parse(args); err != nil {
		return cli.ResetPasswordOptions{}, err
	}
	if *username == "" && flags.NArg() > 0 {
		*username = flags.Arg(0)
	}
	if *username == "" {
		return cli.ResetPasswordOptions{}, errors.New("usage: ruralhealth reset-password [-prompt] -username <name>")
	}

	return cli.ResetPasswordOptions{
		Username: *username,
		Prompt:   *prompt,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Logger:   logger,
	}, nil
}

func mustLoadLocation(name string, logger *logrus.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warnf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
