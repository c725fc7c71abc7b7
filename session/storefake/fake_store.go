// Package storefake provides an in-memory session store for testing.
package storefake

import "sync"

// Store is an in-memory implementation of session.Store that records calls.
type Store struct {
	mu         sync.Mutex
	token      string
	ClearCalls int
	SetCalls   int

	TokenErr error
	SetErr   error
	ClearErr error
}

// NewStore creates a fake store, optionally pre-loaded with a token.
func NewStore(token string) *Store {
	return &Store{token: token}
}

func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TokenErr != nil {
		return "", s.TokenErr
	}
	return s.token, nil
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.token = token
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ClearCalls++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token = ""
	return nil
}
