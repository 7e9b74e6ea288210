// Package session tracks the logged-in user across the remote API and the durable store.
package session

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

// AuthError reports a rejected or failed login. Any previous session is kept.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Manager is owned by a single caller and is not safe for concurrent use.
type Manager struct {
	auth   port.AuthAPI
	store  port.SessionStore
	logger *zap.Logger

	user *domain.User
}

func NewManager(auth port.AuthAPI, store port.SessionStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

// Login replaces the current session only when the API accepts the credentials.
// A failure to persist the new session is logged, the in-memory session still switches.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (domain.Session, error) {
	user, err := m.auth.Login(ctx, identifier, secret)
	if err != nil {
		m.logger.Warn("login rejected", zap.Error(err))
		return m.Session(), &AuthError{Err: fmt.Errorf("auth.Login: %w", err)}
	}

	m.user = &user

	if err := m.store.Save(ctx, user); err != nil {
		m.logger.Error("session not persisted", zap.Error(err))
	}

	m.logger.Info("logged in", zap.String("email", user.Email))

	return m.Session(), nil
}

// Restore trusts whatever profile the store holds; it is not revalidated against the API.
// An unreadable snapshot leaves the session logged out.
func (m *Manager) Restore(ctx context.Context) domain.Session {
	user, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("stored session unreadable, starting logged out", zap.Error(err))
		return m.Session()
	}
	if user == nil {
		return m.Session()
	}

	m.user = user
	m.logger.Warn("session restored without revalidation", zap.String("email", user.Email))

	return m.Session()
}

// Logout always succeeds; a store failure is only logged.
func (m *Manager) Logout(ctx context.Context) {
	m.user = nil

	if err := m.store.Delete(ctx); err != nil {
		m.logger.Error("stored session not cleared", zap.Error(err))
	}

	m.logger.Info("logged out")
}

func (m *Manager) Session() domain.Session {
	if m.user == nil {
		return domain.Session{}
	}

	user := *m.user
	return domain.Session{User: &user}
}

// PrefillCustomer seeds checkout details from the logged-in user.
func (m *Manager) PrefillCustomer() domain.Customer {
	if m.user == nil {
		return domain.Customer{}
	}

	return domain.Customer{
		Name:       m.user.Name,
		Email:      m.user.Email,
		DocumentID: m.user.DocumentID,
	}
}
