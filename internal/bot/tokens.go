package bot

import (
	"sync"

	"github.com/google/uuid"
)

// Telegram caps callback data at 64 bytes; model names are unbounded. The
// registry maps short opaque tokens on selection buttons back to the model
// name they stand for.
type tokenRegistry struct {
	mu      sync.Mutex
	entries map[string]string
}

// Tokens are never individually expired; a stale button simply reads
// "expired" after a prune. Cap keeps the map from growing without bound.
const maxTokens = 512

func newTokenRegistry() *tokenRegistry {
	return &tokenRegistry{entries: make(map[string]string)}
}

func (r *tokenRegistry) Add(model string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= maxTokens {
		r.entries = make(map[string]string)
	}

	id := uuid.New().String()[:8]
	r.entries[id] = model

	return id
}

func (r *tokenRegistry) Lookup(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.entries[id]
	return model, ok
}
