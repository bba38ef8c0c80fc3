package agent

import (
	"context"

	"github.com/bowerhall/ollamagram/internal/ollama"
)

// Catalog is the slice of the backend the pull flow and model selection
// need: what is available now, and downloading something new.
type Catalog interface {
	List(ctx context.Context) ([]ollama.ModelInfo, error)
	Pull(ctx context.Context, model string) error
}

// Chatter is the inference call used by the relay.
type Chatter interface {
	Chat(ctx context.Context, model, text string) (string, error)
}

// Result is what every entry point hands back to the dispatch front:
// messages to deliver in order, and whether the next plain-text message
// from the same user should be routed back into the pull flow.
type Result struct {
	Messages []string
	Awaiting bool
}

// ModelChoice is one row of the selection listing.
type ModelChoice struct {
	Name   string
	Active bool
}

type Config struct {
	DefaultModel string
	ChunkLimit   int
}
