package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
)

// Manager ties the session store to the signed cookie that carries its id.
type Manager struct {
	store  SessionStore
	signer *Signer
	cfg    config.SessionConfig
}

func NewManager(store SessionStore, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:  store,
		signer: NewSigner([]byte(cfg.Secret), cfg.TTL),
		cfg:    cfg,
	}
}

func (m *Manager) CookieName() string { return m.cfg.CookieName }

// Start creates a session for brokerID and returns the cookie to set.
func (m *Manager) Start(ctx context.Context, brokerID string) (*http.Cookie, error) {
	sid, err := m.store.Create(ctx, brokerID)
	if err != nil {
		return nil, err
	}
	val, err := m.signer.Sign(sid)
	if err != nil {
		_ = m.store.Destroy(ctx, sid)
		return nil, err
	}
	return m.cookie(val, int(m.cfg.TTL/time.Second)), nil
}

// Resolve returns the session id and broker id behind a cookie value.
// Tampered, expired or revoked cookies yield ErrSessionNotFound.
func (m *Manager) Resolve(ctx context.Context, value string) (string, string, error) {
	sid, err := m.signer.Parse(value)
	if err != nil {
		return "", "", ErrSessionNotFound
	}
	brokerID, err := m.store.Get(ctx, sid)
	if err != nil {
		return "", "", err
	}
	return sid, brokerID, nil
}

// End destroys the session and returns a cookie that clears the client copy.
func (m *Manager) End(ctx context.Context, sid string) (*http.Cookie, error) {
	if sid != "" {
		if err := m.store.Destroy(ctx, sid); err != nil {
			return nil, err
		}
	}
	return m.cookie("", -1), nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// IsNotFound reports whether err means "no valid session".
func IsNotFound(err error) bool { return errors.Is(err, ErrSessionNotFound) }
