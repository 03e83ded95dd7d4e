package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionKey is the reserved storage key for the admin session record.
const SessionKey = "admin_session"

// Record is the persisted session state. A present record with a matching
// identifier means the admin is logged in; its absence means logged out.
type Record struct {
	ID       string    `json:"id"`
	IssuedAt time.Time `json:"issued_at"`
}

type sessionStore interface {
	Read(ctx context.Context, key string, dest any) (bool, error)
	Write(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// Manager persists the single admin session in the key-value store so a
// restart (the reload case) keeps the login state.
type Manager struct {
	store sessionStore
}

// NewManager constructs a session manager backed by the persistent store.
func NewManager(store sessionStore) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	return &Manager{store: store}, nil
}

// Start persists a fresh session and returns its identifier. Any prior
// session is superseded; there is only one admin.
func (m *Manager) Start(ctx context.Context) (string, error) {
	record := Record{
		ID:       uuid.NewString(),
		IssuedAt: time.Now().UTC(),
	}
	if err := m.store.Write(ctx, SessionKey, record); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return record.ID, nil
}

// HasSession reports whether the provided identifier matches the persisted session.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	var record Record
	found, err := m.store.Read(ctx, SessionKey, &record)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(record.ID), []byte(sessionID)) == 1, nil
}

// Revoke deletes the persisted session.
func (m *Manager) Revoke(ctx context.Context) error {
	return m.store.Delete(ctx, SessionKey)
}
