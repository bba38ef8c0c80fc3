package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/session"
)

const (
	msgNoModels    = "There are currently no loaded models."
	msgAskModel    = "Tell me what new model you want to load (type /cancel to quit)."
	msgPullDone    = "✅ The model is now available."
	msgCancelled   = "Action canceled."
	msgNotInFlow   = "Nothing to cancel."
	pullingFormat  = "⬇️ %s is now being downloaded."
	pullFailFormat = "❌ Failed to pull model: %s. Please check the model name and try again."
)

// StartPull enters the pull-model flow: show the current catalog, then ask
// for a model name. Refused outside private chat. Re-entering while already
// awaiting a name just restarts the list + prompt step.
func (a *Agent) StartPull(ctx context.Context, userID int64, private bool) Result {
	if !private {
		return Result{Messages: []string{msgPrivateOnly}}
	}

	var messages []string

	models, err := a.catalog.List(ctx)
	switch {
	case err != nil:
		// listing failure is reported but does not abort entry; the user
		// is still prompted for a name
		logger.Error("model listing failed", "error", err, "user", userID)
		messages = append(messages, msgListFailed)
	case len(models) == 0:
		messages = append(messages, msgNoModels)
	default:
		var list strings.Builder
		list.WriteString("Available models:")
		for _, m := range models {
			list.WriteString("\n- " + m.Name)
		}
		messages = append(messages, list.String())
	}

	messages = append(messages, msgAskModel)
	a.sessions.Get(userID).SetState(session.StateAwaitingModel)

	logger.Debug("pull flow entered", "user", userID)

	return Result{Messages: messages, Awaiting: true}
}

// SubmitModelName takes the text a user sent while the flow was awaiting a
// model name and attempts the download. On failure the flow stays where it
// was so the user can retry with a corrected name; retries are unbounded.
func (a *Agent) SubmitModelName(ctx context.Context, userID int64, text string) Result {
	// whitespace-only input trims to "" and is still handed to the
	// backend; see design notes
	model := strings.TrimSpace(text)

	messages := []string{fmt.Sprintf(pullingFormat, model)}

	if err := a.catalog.Pull(ctx, model); err != nil {
		logger.Error("pull failed", "error", err, "model", model, "user", userID)
		messages = append(messages, fmt.Sprintf(pullFailFormat, model))

		return Result{Messages: messages, Awaiting: true}
	}

	a.sessions.Get(userID).SetState(session.StateIdle)
	logger.Info("model pulled", "model", model, "user", userID)

	messages = append(messages, msgPullDone)

	// a successful pull expands the catalog but does not change the
	// user's active model
	return Result{Messages: messages}
}

// CancelPull leaves the flow. Safe to call when not in it.
func (a *Agent) CancelPull(userID int64) Result {
	sess := a.sessions.Get(userID)
	if sess.State() != session.StateAwaitingModel {
		return Result{Messages: []string{msgNotInFlow}}
	}

	sess.SetState(session.StateIdle)
	logger.Debug("pull flow cancelled", "user", userID)

	return Result{Messages: []string{msgCancelled}}
}
