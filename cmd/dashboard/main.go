package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/matchsight/matchsight/internal/dashboard/dashboard"
	"github.com/matchsight/matchsight/internal/pkg/config"
	"github.com/matchsight/matchsight/internal/pkg/logging"
	"github.com/matchsight/matchsight/internal/pkg/metrics"
	"github.com/matchsight/matchsight/internal/pkg/predictor"
	"github.com/matchsight/matchsight/internal/pkg/storage"
)

const defaultConfigPath = "configs/dashboard.yaml"

func main() {
	var configPath string

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.SetupLogger(&cfg.Logging, "dashboard")
	slog.Info("Config loaded", "path", configPath)

	// Env overrides so secrets stay out of configs.
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Notifications.TelegramBotToken = token
		slog.Info("Using Telegram bot token from environment")
	}
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.Notifications.TelegramChatID = chatID
			slog.Info("Using Telegram chat ID from environment", "chat_id", chatID)
		}
	}
	if envDSN := os.Getenv("POSTGRES_DSN"); envDSN != "" {
		cfg.Postgres.DSN = envDSN
		slog.Info("Using PostgreSQL DSN from environment")
	}

	var matchStorage storage.MatchStorage
	if cfg.Postgres.DSN != "" {
		pgStorage, err := storage.NewPostgresMatchStorage(&cfg.Postgres)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
		}
		matchStorage = pgStorage
		defer func() {
			if err := pgStorage.Close(); err != nil {
				slog.Error("Error closing PostgreSQL storage", "error", err)
			}
		}()
	} else {
		slog.Warn("No postgres DSN configured, running without historical dataset")
	}

	m := metrics.New()
	session := dashboard.NewSession(m)
	model := predictor.New(&cfg.Predictor)
	client := dashboard.NewMatchesClient(&cfg.DataSource)
	hub := dashboard.NewHub()

	if cfg.Notifications.TelegramBotToken != "" && cfg.Notifications.TelegramChatID != 0 {
		notifier := dashboard.NewTelegramNotifier(
			cfg.Notifications.TelegramBotToken, cfg.Notifications.TelegramChatID)
		if notifier != nil {
			session.OnNewPrediction(notifier.NotifyNewPrediction)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, stopping dashboard...")
		cancel()
	}()

	go hub.Run(ctx)

	server := dashboard.NewServer(cfg, session, model, matchStorage, client, hub, m)

	slog.Info("Starting match prediction dashboard...")
	if err := server.Start(ctx); err != nil {
		slog.Error("Dashboard server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Dashboard stopped")
}
