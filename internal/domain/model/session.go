package model

import "errors"

// ErrIncompleteSession is returned by NewSession when either half of the
// principal/token pair is missing.
var ErrIncompleteSession = errors.New("session requires both a principal and a token")

// Session pairs the authenticated principal with its bearer token. The zero
// value is the empty (logged out) session. A non-empty Session can only be
// built through NewSession, so the principal is present iff the token is.
type Session struct {
	principal *Principal
	token     string
}

// NewSession builds a populated Session. Both a principal id and a token are required.
func NewSession(principal Principal, token string) (Session, error) {
	if principal.ID == "" || token == "" {
		return Session{}, ErrIncompleteSession
	}
	p := principal
	return Session{principal: &p, token: token}, nil
}

// Principal returns the session's principal and whether one is set.
func (s Session) Principal() (Principal, bool) {
	if s.principal == nil {
		return Principal{}, false
	}
	return *s.principal, true
}

// Token returns the bearer token, or "" for the empty session.
func (s Session) Token() string {
	return s.token
}

// IsEmpty reports whether the session carries no credentials.
func (s Session) IsEmpty() bool {
	return s.principal == nil
}

// Equal reports whether two sessions hold the same principal and token.
func (s Session) Equal(other Session) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() == other.IsEmpty()
	}
	return *s.principal == *other.principal && s.token == other.token
}
