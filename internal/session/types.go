package session

import "sync"

// State tracks where a user is in the pull-model flow. Idle is the rest
// state; AwaitingModel means the next plain-text message from that user is
// a model name.
type State int

const (
	StateIdle State = iota
	StateAwaitingModel
)

// Session holds all per-user state: the selected model (empty means "use
// the default") and the pull-flow state. One record per user, created
// lazily, never removed.
type Session struct {
	mu          sync.Mutex
	activeModel string
	state       State
}

type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}
