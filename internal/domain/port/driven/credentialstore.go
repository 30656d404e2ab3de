package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore writes when
// STOREFRONT_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set STOREFRONT_SECRET_KEY")

// CredentialStore defines the driven port for persisting the admin session
// (the principal and its bearer token). It is the only component that writes
// persisted credentials.
type CredentialStore interface {
	// Load returns the persisted session. An absent, partial or unreadable
	// record yields the empty session; Load never fails.
	Load(ctx context.Context) model.Session

	// Save persists both halves of a non-empty session as one write. Saving
	// the empty session removes the record.
	Save(ctx context.Context, session model.Session) error

	// Clear removes the persisted record. Clearing an absent record is not an error.
	Clear(ctx context.Context) error
}
