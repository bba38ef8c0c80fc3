package session

// ActiveModel returns the session's selected model and whether one was set.
func (s *Session) ActiveModel() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeModel, s.activeModel != ""
}

// SetActiveModel overwrites the selection unconditionally. Last writer wins.
func (s *Session) SetActiveModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeModel = model
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for userID, creating it on first access.
func (s *Store) Get(userID int64) *Session {
	s.mu.RLock()

	sess, ok := s.sessions[userID]
	s.mu.RUnlock()

	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok = s.sessions[userID]; ok {
		return sess
	}

	sess = &Session{}
	s.sessions[userID] = sess

	return sess
}
