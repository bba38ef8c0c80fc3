package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bowerhall/ollamagram/internal/agent"
	"github.com/bowerhall/ollamagram/internal/bot"
	"github.com/bowerhall/ollamagram/internal/config"
	"github.com/bowerhall/ollamagram/internal/health"
	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/ollama"
	"github.com/bowerhall/ollamagram/internal/session"
	"github.com/bowerhall/ollamagram/internal/status"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	client := ollama.NewClient(cfg.Ollama.BaseURL)
	sessions := session.NewStore()

	core := agent.New(client, client, sessions, agent.Config{
		DefaultModel: cfg.Relay.DefaultModel,
		ChunkLimit:   cfg.Relay.ChunkLimit,
	})

	reporter := status.NewReporter(client)

	b, err := bot.New(bot.Config{
		Provider:    cfg.Bot.Provider,
		Token:       cfg.Bot.Token,
		OwnerChatID: cfg.Bot.OwnerChatID,
	}, core, reporter)
	if err != nil {
		logger.Fatal("failed to create bot", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Health.Enabled {
		watcher := health.NewWatcher(client, func(message string) {
			if err := b.Send(cfg.Bot.OwnerChatID, message); err != nil {
				logger.Error("health notice failed", "error", err)
			}
		})

		if err := watcher.Start(cfg.Health.Schedule); err != nil {
			logger.Fatal("failed to start health watcher", "error", err)
		}
		defer watcher.Stop()
	}

	logger.Info("ollamagram starting",
		"provider", cfg.Bot.Provider,
		"backend", cfg.Ollama.BaseURL,
		"default_model", cfg.Relay.DefaultModel)

	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
