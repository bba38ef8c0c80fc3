package agent

import (
	"context"
	"fmt"

	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/session"
)

const (
	msgPrivateOnly = "This command is only available in private chat."
	msgApology     = "Sorry, I couldn't get a response from the model."
	msgListFailed  = "Could not reach the backend to list models."
)

// Agent owns the conversation-state layer: which model each user talks to,
// the pull-model flow, and relaying plain chat to the backend.
type Agent struct {
	catalog  Catalog
	chat     Chatter
	sessions *session.Store

	defaultModel string
	chunkLimit   int
}

func New(catalog Catalog, chat Chatter, sessions *session.Store, cfg Config) *Agent {
	return &Agent{
		catalog:      catalog,
		chat:         chat,
		sessions:     sessions,
		defaultModel: cfg.DefaultModel,
		chunkLimit:   cfg.ChunkLimit,
	}
}

// Awaiting reports whether the user's next plain-text message belongs to
// the pull flow rather than the relay.
func (a *Agent) Awaiting(userID int64) bool {
	return a.sessions.Get(userID).State() == session.StateAwaitingModel
}

// Relay forwards text to the backend under the user's selected model
// (or the default) and returns the reply split into sendable chunks.
// Backend failures never escape; the user gets a fixed apology instead.
func (a *Agent) Relay(ctx context.Context, userID int64, text string) []string {
	model := a.resolveModel(userID)

	reply, err := a.chat.Chat(ctx, model, text)
	if err != nil {
		logger.Error("inference failed", "error", err, "model", model, "user", userID)
		return []string{msgApology}
	}

	logger.Debug("reply received", "model", model, "chars", len(reply))

	return chunkMessage(reply, a.chunkLimit)
}

// ListSelectable builds the selection listing for a user: the backend's
// current catalog cross-referenced against their active model. Only
// meaningful in private chat, same precondition as the pull flow. A
// non-empty Result means there is nothing to choose from and its messages
// should be delivered instead.
func (a *Agent) ListSelectable(ctx context.Context, userID int64, private bool) ([]ModelChoice, Result) {
	if !private {
		return nil, Result{Messages: []string{msgPrivateOnly}}
	}

	models, err := a.catalog.List(ctx)
	if err != nil {
		logger.Error("model listing failed", "error", err, "user", userID)
		return nil, Result{Messages: []string{msgListFailed}}
	}

	if len(models) == 0 {
		return nil, Result{Messages: []string{msgNoModels}}
	}

	active := a.resolveModel(userID)

	choices := make([]ModelChoice, 0, len(models))
	for _, m := range models {
		choices = append(choices, ModelChoice{
			Name:   m.Name,
			Active: m.Name == active,
		})
	}

	return choices, Result{}
}

// ApplySelection records the user's choice unconditionally. The name came
// from a listing the user was shown; no re-check against the catalog.
func (a *Agent) ApplySelection(userID int64, model string) string {
	a.sessions.Get(userID).SetActiveModel(model)
	logger.Info("model selected", "user", userID, "model", model)

	return fmt.Sprintf("Now chatting with %s.", model)
}

func (a *Agent) resolveModel(userID int64) string {
	if model, ok := a.sessions.Get(userID).ActiveModel(); ok {
		return model
	}

	return a.defaultModel
}
