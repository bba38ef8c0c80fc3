package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bowerhall/ollamagram/internal/agent"
	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/status"
	"github.com/bwmarrin/discordgo"
)

func newDiscord(token string, agent *agent.Agent, report *status.Reporter, ownerChatID int64) (Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	d := &discord{
		session:     session,
		agent:       agent,
		report:      report,
		ownerChatID: ownerChatID,
	}

	session.AddHandler(d.handleMessage)

	return d, nil
}

func (d *discord) Start(ctx context.Context) error {
	d.ctx = ctx

	if err := d.session.Open(); err != nil {
		return err
	}

	logger.Info("discord bot started")

	<-ctx.Done()
	return d.session.Close()
}

func (d *discord) Send(chatID int64, message string) error {
	channelID := fmt.Sprintf("%d", chatID)
	_, err := d.session.ChannelMessageSend(channelID, message)
	return err
}

func (d *discord) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		logger.Error("bad author id", "id", m.Author.ID)
		return
	}

	// DMs have no guild; that is the "private conversation" here
	private := m.GuildID == ""

	logger.Info("message received", "user", userID, "from", m.Author.Username, "text", truncate(m.Content, 50))

	text := m.Content

	switch {
	case text == "!pullmodel":
		d.deliver(m.ChannelID, d.agent.StartPull(d.ctx, userID, private).Messages)
	case text == "!cancel":
		d.deliver(m.ChannelID, d.agent.CancelPull(userID).Messages)
	case text == "!models":
		d.handleModels(userID, m.ChannelID, private)
	case strings.HasPrefix(text, "!use "):
		d.deliver(m.ChannelID, []string{d.agent.ApplySelection(userID, strings.TrimSpace(strings.TrimPrefix(text, "!use ")))})
	case text == "!status":
		if d.ownerChatID != 0 && m.ChannelID != fmt.Sprintf("%d", d.ownerChatID) {
			return
		}
		d.deliver(m.ChannelID, []string{d.report.Report(d.ctx)})
	case d.agent.Awaiting(userID):
		if isCancelWord(text) {
			d.deliver(m.ChannelID, d.agent.CancelPull(userID).Messages)
		} else {
			d.deliver(m.ChannelID, d.agent.SubmitModelName(d.ctx, userID, text).Messages)
		}
	default:
		d.deliver(m.ChannelID, d.agent.Relay(d.ctx, userID, text))
	}
}

// handleModels renders the selection listing as text; Discord selection
// goes through "!use <name>" rather than buttons.
func (d *discord) handleModels(userID int64, channelID string, private bool) {
	choices, res := d.agent.ListSelectable(d.ctx, userID, private)
	if len(res.Messages) > 0 {
		d.deliver(channelID, res.Messages)
		return
	}

	var list strings.Builder
	list.WriteString("Available models (pick one with `!use <name>`):")
	for _, choice := range choices {
		list.WriteString("\n- " + choice.Name)
		if choice.Active {
			list.WriteString(" (active)")
		}
	}

	d.deliver(channelID, []string{list.String()})
}

func (d *discord) deliver(channelID string, messages []string) {
	for _, message := range messages {
		if _, err := d.session.ChannelMessageSend(channelID, message); err != nil {
			logger.Error("discord send failed", "error", err, "channelID", channelID)
		}
	}
}
