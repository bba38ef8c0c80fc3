package bot

import (
	"fmt"

	"github.com/bowerhall/ollamagram/internal/agent"
	"github.com/bowerhall/ollamagram/internal/status"
)

func New(cfg Config, agent *agent.Agent, report *status.Reporter) (Bot, error) {
	switch cfg.Provider {
	case "telegram":
		return newTelegram(cfg.Token, agent, report, cfg.OwnerChatID)
	case "discord":
		return newDiscord(cfg.Token, agent, report, cfg.OwnerChatID)
	default:
		return nil, fmt.Errorf("unknown bot provider: %s", cfg.Provider)
	}
}
