package config

type Config struct {
	Ollama OllamaConfig
	Bot    BotConfig
	Relay  RelayConfig
	Health HealthConfig
}

type OllamaConfig struct {
	BaseURL string
}

type BotConfig struct {
	Provider    string
	Token       string
	OwnerChatID int64
}

type RelayConfig struct {
	DefaultModel string
	ChunkLimit   int
}

type HealthConfig struct {
	Enabled  bool
	Schedule string
}
