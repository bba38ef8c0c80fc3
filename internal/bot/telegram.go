package bot

import (
	"context"
	"strings"

	"github.com/bowerhall/ollamagram/internal/agent"
	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/status"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackPrefix = "m:"
	callbackPull   = "pull"
)

func newTelegram(token string, agent *agent.Agent, report *status.Reporter, ownerChatID int64) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &telegram{
		api:         api,
		agent:       agent,
		report:      report,
		ownerChatID: ownerChatID,
		tokens:      newTokenRegistry(),
	}, nil
}

func (t *telegram) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	logger.Info("telegram bot started", "username", t.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			// each update is an independent unit of work; a slow pull for
			// one user must not stall anyone else
			switch {
			case update.CallbackQuery != nil:
				go t.handleCallback(ctx, update.CallbackQuery)
			case update.Message != nil && update.Message.From != nil && update.Message.Text != "":
				go t.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (t *telegram) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	private := msg.Chat.IsPrivate()

	logger.Info("message received", "user", userID, "from", msg.From.UserName, "text", truncate(msg.Text, 50))

	if msg.IsCommand() {
		t.handleCommand(ctx, msg, userID, chatID, private)
		return
	}

	if t.agent.Awaiting(userID) {
		var res agent.Result
		if isCancelWord(msg.Text) {
			res = t.agent.CancelPull(userID)
		} else {
			res = t.agent.SubmitModelName(ctx, userID, msg.Text)
		}
		t.deliver(chatID, res.Messages)
		return
	}

	t.sendTyping(chatID)
	t.deliver(chatID, t.agent.Relay(ctx, userID, msg.Text))
}

func (t *telegram) handleCommand(ctx context.Context, msg *tgbotapi.Message, userID, chatID int64, private bool) {
	switch msg.Command() {
	case "start", "help":
		t.deliver(chatID, []string{helpText})
	case "pullmodel":
		res := t.agent.StartPull(ctx, userID, private)
		t.deliver(chatID, res.Messages)
	case "cancel":
		res := t.agent.CancelPull(userID)
		t.deliver(chatID, res.Messages)
	case "models":
		t.handleModels(ctx, userID, chatID, private)
	case "status":
		if t.ownerChatID != 0 && chatID != t.ownerChatID {
			return
		}
		t.deliver(chatID, []string{t.report.Report(ctx)})
	default:
		logger.Debug("unknown command ignored", "command", msg.Command())
	}
}

func (t *telegram) handleModels(ctx context.Context, userID, chatID int64, private bool) {
	choices, res := t.agent.ListSelectable(ctx, userID, private)
	if len(res.Messages) > 0 {
		t.deliver(chatID, res.Messages)
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, choice := range choices {
		label := choice.Name
		if choice.Active {
			label += " ✔"
		}
		data := callbackPrefix + t.tokens.Add(choice.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬇ Load a new model", callbackPull),
	))

	reply := tgbotapi.NewMessage(chatID, "Choose a model:")
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := t.api.Send(reply); err != nil {
		logger.Error("send model list failed", "error", err, "chatID", chatID)
	}
}

func (t *telegram) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data

	if data == callbackPull {
		// same entry as /pullmodel; the button only renders in private
		// chat but the precondition is enforced again regardless
		private := cb.Message != nil && cb.Message.Chat.IsPrivate()
		res := t.agent.StartPull(ctx, cb.From.ID, private)
		t.answerCallback(cb.ID, "")
		if cb.Message != nil {
			t.deliver(cb.Message.Chat.ID, res.Messages)
		}
		return
	}

	if !strings.HasPrefix(data, callbackPrefix) {
		return
	}

	model, ok := t.tokens.Lookup(strings.TrimPrefix(data, callbackPrefix))
	if !ok {
		t.answerCallback(cb.ID, "That list has expired, run /models again.")
		return
	}

	// the token came from a listing this user was shown; trust it as-is
	confirmation := t.agent.ApplySelection(cb.From.ID, model)
	t.answerCallback(cb.ID, "")

	if cb.Message != nil {
		t.deliver(cb.Message.Chat.ID, []string{confirmation})
	}
}

func (t *telegram) answerCallback(id, text string) {
	if _, err := t.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		logger.Error("answer callback failed", "error", err)
	}
}

// deliver sends messages one by one, in order. Telegram delivers per-chat
// sends in call order, which is what keeps chunked replies readable.
func (t *telegram) deliver(chatID int64, messages []string) {
	for _, message := range messages {
		if err := t.Send(chatID, message); err != nil {
			logger.Error("send failed", "error", err, "chatID", chatID)
		}
	}
}

func (t *telegram) Send(chatID int64, message string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, message))
	return err
}

func (t *telegram) sendTyping(chatID int64) {
	if _, err := t.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		logger.Debug("send typing failed", "error", err)
	}
}
