package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultOllamaURL  = "http://localhost:11434"
	defaultModel      = "llama3.2:1b"
	defaultChunkLimit = 4096
	discordChunkLimit = 2000
	defaultSchedule   = "@every 5m"
)

// fileOverlay holds the non-secret knobs that may come from an optional
// ollamagram.yml next to the binary. Env vars always win over the file.
type fileOverlay struct {
	OllamaURL    string `yaml:"ollama_url"`
	DefaultModel string `yaml:"default_model"`
	ChunkLimit   int    `yaml:"chunk_limit"`
	HealthCron   string `yaml:"health_cron"`
}

func Load() (*Config, error) {
	overlay, err := loadOverlay()
	if err != nil {
		return nil, err
	}

	botConfig, err := loadBotConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Ollama: loadOllamaConfig(overlay),
		Bot:    botConfig,
		Relay:  loadRelayConfig(overlay, botConfig.Provider),
		Health: loadHealthConfig(overlay, botConfig),
	}, nil
}

func loadOverlay() (fileOverlay, error) {
	path := os.Getenv("OLLAMAGRAM_CONFIG")
	if path == "" {
		path = "ollamagram.yml"
	}

	var overlay fileOverlay

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return overlay, nil
		}
		return overlay, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return overlay, fmt.Errorf("parse %s: %w", path, err)
	}

	return overlay, nil
}

func loadBotConfig() (BotConfig, error) {
	provider := os.Getenv("BOT_PROVIDER")
	if provider == "" {
		provider = "telegram"
	}

	var token string
	switch provider {
	case "telegram":
		token = os.Getenv("TELEGRAM_TOKEN")
		if token == "" {
			return BotConfig{}, fmt.Errorf("TELEGRAM_TOKEN not set")
		}
	case "discord":
		token = os.Getenv("DISCORD_TOKEN")
		if token == "" {
			return BotConfig{}, fmt.Errorf("DISCORD_TOKEN not set")
		}
	default:
		return BotConfig{}, fmt.Errorf("unknown BOT_PROVIDER: %s", provider)
	}

	var ownerChatID int64
	if id, err := strconv.ParseInt(os.Getenv("OWNER_CHAT_ID"), 10, 64); err == nil {
		ownerChatID = id
	}

	return BotConfig{
		Provider:    provider,
		Token:       token,
		OwnerChatID: ownerChatID,
	}, nil
}

func loadOllamaConfig(overlay fileOverlay) OllamaConfig {
	baseURL := os.Getenv("OLLAMA_URL")
	if baseURL == "" {
		baseURL = overlay.OllamaURL
	}
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	return OllamaConfig{BaseURL: baseURL}
}

func loadRelayConfig(overlay fileOverlay, provider string) RelayConfig {
	model := os.Getenv("DEFAULT_MODEL")
	if model == "" {
		model = overlay.DefaultModel
	}
	if model == "" {
		model = defaultModel
	}

	limit := overlay.ChunkLimit
	if env, err := strconv.Atoi(os.Getenv("CHUNK_LIMIT")); err == nil && env > 0 {
		limit = env
	}
	if limit <= 0 {
		// platform single-message caps: Telegram 4096 chars, Discord 2000
		if provider == "discord" {
			limit = discordChunkLimit
		} else {
			limit = defaultChunkLimit
		}
	}

	return RelayConfig{
		DefaultModel: model,
		ChunkLimit:   limit,
	}
}

func loadHealthConfig(overlay fileOverlay, bot BotConfig) HealthConfig {
	schedule := os.Getenv("HEALTH_CRON")
	if schedule == "" {
		schedule = overlay.HealthCron
	}
	if schedule == "" {
		schedule = defaultSchedule
	}

	// the watcher only makes sense with someone to notify
	return HealthConfig{
		Enabled:  bot.OwnerChatID != 0 && os.Getenv("HEALTH_DISABLED") != "true",
		Schedule: schedule,
	}
}
