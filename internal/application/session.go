// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// Login failure messages that do not come from the backend.
const (
	MissingCredentialsMessage = "Please enter both username and password"
	PersistFailedMessage      = "Could not save the login session"
)

// SessionState is the read-only view of the session exposed to guards and pages.
type SessionState struct {
	Ready         bool
	Authenticated bool
	Principal     model.Principal
}

// SessionService owns the admin session. It is the only writer of the
// in-memory session, the credential store and the pipeline's bearer token,
// and it keeps the three consistent.
type SessionService struct {
	store  driven.CredentialStore
	auth   driven.AuthAPI
	tokens driven.TokenAuthorizer
	logger *slog.Logger

	initOnce sync.Once

	mu      sync.RWMutex
	ready   bool
	session model.Session
	lastErr string
}

// NewSessionService creates a SessionService. It is not ready until Initialize runs.
func NewSessionService(
	store driven.CredentialStore,
	auth driven.AuthAPI,
	tokens driven.TokenAuthorizer,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		store:  store,
		auth:   auth,
		tokens: tokens,
		logger: logger,
	}
}

// Initialize restores the persisted session and installs its token. Only the
// first call has any effect; concurrent callers wait for it to finish. Login
// and Logout call it first so they always apply on top of the restored state.
func (s *SessionService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		session := s.store.Load(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if token := session.Token(); token != "" {
			s.tokens.SetToken(token)
		}
		s.session = session
		s.ready = true

		if p, ok := session.Principal(); ok {
			s.logger.Info("restored admin session", "admin", p.DisplayName())
		} else {
			s.logger.Debug("no persisted admin session")
		}
	})
}

// Login exchanges creds for a session. On failure the current session is
// left untouched and the message is available from LastError. The returned
// error is an *model.APIError.
func (s *SessionService) Login(ctx context.Context, creds model.Credentials) error {
	s.Initialize(ctx)

	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return s.fail(MissingCredentialsMessage)
	}

	principal, token, err := s.auth.Login(ctx, creds)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			return s.fail(apiErr.Message)
		}
		return s.fail(err.Error())
	}

	session, err := model.NewSession(principal, token)
	if err != nil {
		return s.fail("Login failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("persist admin session", "error", err)
		s.lastErr = PersistFailedMessage
		return &model.APIError{Message: PersistFailedMessage}
	}
	s.tokens.SetToken(token)
	s.session = session
	s.lastErr = ""

	s.logger.Info("admin logged in", "admin", principal.DisplayName())
	return nil
}

// Logout clears the in-memory session, the persisted record and the pipeline
// token. It cannot fail; a store error is logged.
func (s *SessionService) Logout(ctx context.Context) {
	s.Initialize(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{}
	s.tokens.ClearToken()
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("clear persisted admin session", "error", err)
	}
	s.lastErr = ""

	s.logger.Info("admin logged out")
}

// State returns a snapshot for the route guard and templates.
func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.session.Principal()
	return SessionState{
		Ready:         s.ready,
		Authenticated: ok,
		Principal:     p,
	}
}

// IsAuthenticated reports whether an admin is logged in.
func (s *SessionService) IsAuthenticated() bool {
	return s.State().Authenticated
}

// Current returns the in-memory session.
func (s *SessionService) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// LastError returns the message of the most recent failed login, or "".
func (s *SessionService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *SessionService) fail(message string) error {
	s.mu.Lock()
	s.lastErr = message
	s.mu.Unlock()

	s.logger.Warn("admin login failed", "reason", message)
	return &model.APIError{Message: message}
}
