package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/voice-gateway/internal/session"
)

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrCorruptSession = errors.New("corrupt session record")
)

// record is the JSON value stored under [SessionKey].
type record struct {
	ClientID string `json:"client_id"`
	Token    string `json:"token,omitempty"`
}

// Restore loads the user from store. When no record exists a new anonymous
// client identifier is generated and persisted, so the same identifier is
// reused by later runs until the record is removed.
func Restore(ctx context.Context, store session.Store) (User, error) {
	raw, err := store.Get(ctx, SessionKey)
	if errors.Is(err, session.ErrNotFound) {
		u := User{ClientID: NewClientID()}
		if err = save(ctx, store, record{ClientID: u.ClientID}); err != nil {
			return User{}, err
		}
		return u, nil
	}
	if err != nil {
		return User{}, fmt.Errorf("read session record: %w", err)
	}

	var rec record
	if err = json.Unmarshal([]byte(raw), &rec); err != nil || rec.ClientID == "" {
		return User{}, ErrCorruptSession
	}

	u := User{ClientID: rec.ClientID}
	if rec.Token != "" {
		if u.Account, err = AccountFromToken(rec.Token); err != nil {
			return User{}, err
		}
	}

	return u, nil
}

// SignIn attaches token to u, persists the record and returns the
// authenticated user.
func SignIn(ctx context.Context, store session.Store, u User, token string) (User, error) {
	account, err := AccountFromToken(token)
	if err != nil {
		return User{}, err
	}

	if err = save(ctx, store, record{ClientID: u.ClientID, Token: account.Token}); err != nil {
		return User{}, err
	}

	u.Account = account
	return u, nil
}

// Persist writes u to store, replacing any existing record.
func Persist(ctx context.Context, store session.Store, u User) error {
	rec := record{ClientID: u.ClientID}
	if u.Account != nil {
		rec.Token = u.Account.Token
	}
	return save(ctx, store, rec)
}

func save(ctx context.Context, store session.Store, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	if err = store.Set(ctx, SessionKey, string(payload)); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// AccountFromToken derives an [Account] from a backend session token. The
// signature is not verified: the backend is the authority and answers 401
// for a bad session, which resets the client.
func AccountFromToken(tokenString string) (*Account, error) {
	tokenString = strings.TrimSpace(tokenString)

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	account := &Account{Subject: sub, Token: tokenString}
	if email, ok := claims["email"].(string); ok {
		account.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		account.ExpiresAt = exp.Time
	}

	return account, nil
}
