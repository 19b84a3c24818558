// Package session remembers, per sender, the last search phrase and the page
// already shown, enabling "lagi" follow-ups.
package session

import "sync"

// Session is one sender's remembered search state.
type Session struct {
	LastKeyword string
	Page        int
}

// Store is an in-memory session registry. Entries are overwritten on every
// new lookup and never evicted; growth is bounded by the sender population.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session registry.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Get retrieves a sender's session, if any.
func (s *Store) Get(sender string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sender]
	return sess, ok
}

// Put stores the sender's latest keyword and page.
func (s *Store) Put(sender, keyword string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sender] = Session{LastKeyword: keyword, Page: page}
}

// Has reports whether the sender has an active session.
func (s *Store) Has(sender string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sender]
	return ok
}
