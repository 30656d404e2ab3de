package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// Keys of the two persisted entries that make up one credential record.
const (
	principalKey = "admin"
	tokenKey     = "token"
)

const keyDerivationInfo = "isavra-storefront credential store v1"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// Values are encrypted with AES-256-GCM before write and decrypted after read.
type CredentialRepo struct {
	db     *DB
	key    []byte // 32-byte AES-256 key; nil disables the store.
	logger *slog.Logger
}

// NewCredentialRepo creates a CredentialRepo. key must be 32 bytes, or nil, in which
// case Load always returns the empty session and Save returns ErrEncryptionKeyNotSet.
func NewCredentialRepo(db *DB, key []byte, logger *slog.Logger) *CredentialRepo {
	return &CredentialRepo{db: db, key: key, logger: logger}
}

// DeriveKey stretches an operator-supplied secret into a 32-byte AES-256 key using HKDF-SHA256.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, driven.ErrEncryptionKeyNotSet
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyDerivationInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// Load reads both entries and rebuilds the session. Anything short of a
// complete, decryptable, parseable record is treated as logged out.
func (r *CredentialRepo) Load(ctx context.Context) model.Session {
	if r.key == nil {
		return model.Session{}
	}

	const query = `SELECT key, value FROM credentials WHERE key IN (?, ?)`
	rows, err := r.db.Reader.QueryContext(ctx, query, principalKey, tokenKey)
	if err != nil {
		r.logger.Warn("load credentials", "error", err)
		return model.Session{}
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	for rows.Next() {
		var k, encrypted string
		if err := rows.Scan(&k, &encrypted); err != nil {
			r.logger.Warn("scan credential", "error", err)
			return model.Session{}
		}
		plaintext, err := r.decrypt(encrypted)
		if err != nil {
			r.logger.Warn("discarding unreadable credential", "key", k, "error", err)
			return model.Session{}
		}
		values[k] = plaintext
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("iterate credentials", "error", err)
		return model.Session{}
	}

	rawPrincipal, hasPrincipal := values[principalKey]
	token, hasToken := values[tokenKey]
	if !hasPrincipal || !hasToken {
		if hasPrincipal != hasToken {
			r.logger.Warn("discarding partial credential record")
		}
		return model.Session{}
	}

	var principal model.Principal
	if err := json.Unmarshal([]byte(rawPrincipal), &principal); err != nil {
		r.logger.Warn("discarding malformed principal", "error", err)
		return model.Session{}
	}

	session, err := model.NewSession(principal, token)
	if err != nil {
		r.logger.Warn("discarding incomplete credential record", "error", err)
		return model.Session{}
	}
	return session
}

// Save writes the principal and token in a single transaction. The empty session clears the record.
func (r *CredentialRepo) Save(ctx context.Context, session model.Session) error {
	principal, ok := session.Principal()
	if !ok {
		return r.Clear(ctx)
	}
	if r.key == nil {
		return driven.ErrEncryptionKeyNotSet
	}

	rawPrincipal, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	encPrincipal, err := r.encrypt(string(rawPrincipal))
	if err != nil {
		return err
	}
	encToken, err := r.encrypt(session.Token())
	if err != nil {
		return err
	}

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin credential tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `INSERT OR REPLACE INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := tx.ExecContext(ctx, upsert, principalKey, encPrincipal); err != nil {
		return fmt.Errorf("save credential %q: %w", principalKey, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, tokenKey, encToken); err != nil {
		return fmt.Errorf("save credential %q: %w", tokenKey, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit credential tx: %w", err)
	}
	return nil
}

// Clear deletes both entries.
func (r *CredentialRepo) Clear(ctx context.Context) error {
	const query = `DELETE FROM credentials WHERE key IN (?, ?)`
	if _, err := r.db.Writer.ExecContext(ctx, query, principalKey, tokenKey); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded string
// containing the nonce prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func (r *CredentialRepo) aead() (cipher.AEAD, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
