// Package main is the entry point for the cafeteria menu server.
//
// main stays minimal: read configuration from the environment, build the
// logger, hand everything to internal/server. All real logic lives in the
// internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/auth"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/cafeteria.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "hcanning"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "technics1"
		logger.Warn("ADMIN_PASSWORD not set — using the built-in default, change it in production")
	}

	sessionTTL := auth.DefaultSessionTTL
	if envTTL := os.Getenv("SESSION_TTL"); envTTL != "" {
		ttl, err := time.ParseDuration(envTTL)
		if err != nil || ttl <= 0 {
			logger.Error("invalid SESSION_TTL value, expected a duration like 168h",
				slog.String("value", envTTL),
			)
			os.Exit(1)
		}
		sessionTTL = ttl
	}

	cfg := server.Config{
		Port:          port,
		DBPath:        dbPath,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
		SessionTTL:    sessionTTL,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
