// Package identity describes who the client is talking to the backend as.
//
// Every installation carries a stable anonymous client identifier. Once the
// contributor signs in, the session token issued by the backend is kept in
// the persisted session record and an [Account] is derived from its claims.
package identity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionKey is the well-known key the session record is stored under. The
// request gateway removes it when the backend rejects the session.
const SessionKey = "user"

// Account is the authenticated side of a [User].
type Account struct {
	// Subject is the account identifier ("sub" claim).
	Subject string
	// Email is the account email, when the token carries one.
	Email string
	// ExpiresAt is the token expiry; zero when the token has none.
	ExpiresAt time.Time
	// Token is the raw session token, sent as a cookie by the transport.
	Token string
}

// User is the identity the gateway reads on every request.
type User struct {
	// ClientID is the stable anonymous correlation key.
	ClientID string
	// Account is nil while no authenticated session exists.
	Account *Account
}

// Authenticated reports whether an account session exists.
func (u User) Authenticated() bool {
	return u.Account != nil
}

// NewClientID returns a fresh client identifier (uuid v7, falling back to a
// random v4 if the clock source fails).
func NewClientID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Static is an identity provider that always returns the same user.
type Static User

func (s Static) Current() User {
	return User(s)
}

// Holder is a concurrency-safe identity provider whose user can be replaced
// at runtime, e.g. after sign-in or after a session reset.
type Holder struct {
	mu   sync.RWMutex
	user User
}

func NewHolder(u User) *Holder {
	return &Holder{user: u}
}

func (h *Holder) Current() User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.user
}

func (h *Holder) Set(u User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.user = u
}
