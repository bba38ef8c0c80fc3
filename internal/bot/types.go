package bot

import (
	"context"

	"github.com/bowerhall/ollamagram/internal/agent"
	"github.com/bowerhall/ollamagram/internal/status"
	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot interface {
	Start(ctx context.Context) error
	Send(chatID int64, message string) error
}

type Config struct {
	Provider    string
	Token       string
	OwnerChatID int64 // restrict /status and health notices to this chat
}

type telegram struct {
	api         *tgbotapi.BotAPI
	agent       *agent.Agent
	report      *status.Reporter
	ownerChatID int64
	tokens      *tokenRegistry
}

type discord struct {
	session     *discordgo.Session
	agent       *agent.Agent
	report      *status.Reporter
	ownerChatID int64
	ctx         context.Context
}
