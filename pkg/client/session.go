package client

import "sync"

// Session is the in-process authentication state. It is hydrated from the
// vault at construction and cleared on logout or unrecoverable refresh
// failure. Passed by reference to consumers; there is no package-level
// singleton, so independent instances can coexist in tests.
type Session struct {
	mu            sync.RWMutex
	identity      *Identity
	authenticated bool
}

func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Session) set(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.authenticated = identity != nil
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.authenticated = false
}
