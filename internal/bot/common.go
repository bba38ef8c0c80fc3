package bot

import "strings"

// cancelWords are plain-text inputs that leave the pull flow, in addition
// to the /cancel command. Keep this list minimal to avoid eating a model
// name that merely contains one of them.
var cancelWords = []string{"cancel", "stop", "quit", "abort", "nevermind", "never mind"}

// isCancelWord checks whether the message is a request to leave the pull
// flow. Shared by the Telegram and Discord front ends.
func isCancelWord(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range cancelWords {
		if lower == word {
			return true
		}
	}
	return false
}

const helpText = `I relay your messages to a local Ollama instance.

/models - pick which model answers you
/pullmodel - download a new model to the backend
/cancel - leave the download flow
Anything else is sent straight to the model.`

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
