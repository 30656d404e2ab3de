// Package memory implements a process-local Credential Store. It is used when
// no secret key is configured, so sessions last only as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the session record in memory.
type CredentialStore struct {
	mu      sync.RWMutex
	session model.Session
}

// NewCredentialStore returns an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Load returns the stored session, or the empty session.
func (s *CredentialStore) Load(_ context.Context) model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Save replaces the stored session. Session values are immutable, so the
// record is always both halves or neither.
func (s *CredentialStore) Save(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

// Clear drops the stored session.
func (s *CredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = model.Session{}
	return nil
}
