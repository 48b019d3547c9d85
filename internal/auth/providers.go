// Package auth provides the credential providers attached to console and
// billing requests.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/fivetwenty-io/console-client/internal/constants"
)

// Persister stores session keys outside the process.
type Persister interface {
	SaveAuthKey(authKey string) error
}

// SessionProvider holds the console session key. The auth-key header is only
// sent while a key is set.
type SessionProvider struct {
	mutex     sync.RWMutex
	authKey   string
	persister Persister
}

// NewSessionProvider creates a session provider seeded with authKey, which may
// be empty.
func NewSessionProvider(authKey string, persister Persister) *SessionProvider {
	return &SessionProvider{
		authKey:   authKey,
		persister: persister,
	}
}

// Apply implements http.AuthProvider.
func (p *SessionProvider) Apply(ctx context.Context, header http.Header) error {
	authKey := p.AuthKey()
	if authKey != "" {
		header.Set(constants.AuthKeyHeader, authKey)
	}

	return nil
}

// AuthKey returns the current session key.
func (p *SessionProvider) AuthKey() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return p.authKey
}

// SetAuthKey replaces the session key and hands it to the persister.
func (p *SessionProvider) SetAuthKey(authKey string) error {
	p.mutex.Lock()
	p.authKey = authKey
	p.mutex.Unlock()

	if p.persister == nil {
		return nil
	}

	err := p.persister.SaveAuthKey(authKey)
	if err != nil {
		return fmt.Errorf("persisting session key: %w", err)
	}

	return nil
}

// Clear drops the session key.
func (p *SessionProvider) Clear() error {
	return p.SetAuthKey("")
}

// BasicProvider sends a static billing credential as
// "Authorization: Basic <token>".
type BasicProvider struct {
	token string
}

// NewBasicProvider creates a provider for an already encoded token.
func NewBasicProvider(token string) *BasicProvider {
	return &BasicProvider{token: token}
}

// Apply implements http.AuthProvider.
func (p *BasicProvider) Apply(ctx context.Context, header http.Header) error {
	if p.token != "" {
		header.Set(constants.AuthorizationHeader, "Basic "+p.token)
	}

	return nil
}
