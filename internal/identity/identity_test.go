package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/voice-gateway/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

// ── NewClientID ──────────────────────────────────────────────────────────────

func TestNewClientID_IsUniqueUUID(t *testing.T) {
	a, b := NewClientID(), NewClientID()

	assert.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

// ── providers ────────────────────────────────────────────────────────────────

func TestStatic_Current(t *testing.T) {
	u := User{ClientID: "c1"}
	assert.Equal(t, u, Static(u).Current())
	assert.False(t, u.Authenticated())
}

func TestHolder_SetAndCurrent(t *testing.T) {
	h := NewHolder(User{ClientID: "c1"})
	h.Set(User{ClientID: "c1", Account: &Account{Subject: "42"}})

	assert.True(t, h.Current().Authenticated())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Set(h.Current())
		}()
	}
	wg.Wait()
}

// ── AccountFromToken ─────────────────────────────────────────────────────────

func TestAccountFromToken_Claims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "42", "email": "a@example.org", "exp": exp.Unix()})

	got, err := AccountFromToken(" " + token + " ")

	require.NoError(t, err)
	assert.Equal(t, "42", got.Subject)
	assert.Equal(t, "a@example.org", got.Email)
	assert.True(t, exp.Equal(got.ExpiresAt))
	assert.Equal(t, token, got.Token)
}

func TestAccountFromToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "no subject", token: signedToken(t, jwt.MapClaims{"email": "a@example.org"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AccountFromToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestRestore_CreatesAndPersistsClientID(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	first, err := Restore(ctx, store)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ClientID)
	assert.False(t, first.Authenticated())

	second, err := Restore(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, second.ClientID)
}

func TestRestore_WithToken(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	token := signedToken(t, jwt.MapClaims{"sub": "7"})

	signed, err := SignIn(ctx, store, User{ClientID: "c1"}, token)
	require.NoError(t, err)
	require.True(t, signed.Authenticated())

	got, err := Restore(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ClientID)
	require.NotNil(t, got.Account)
	assert.Equal(t, "7", got.Account.Subject)
}

func TestRestore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(ctx, SessionKey, "{"))

	_, err := Restore(ctx, store)
	assert.ErrorIs(t, err, ErrCorruptSession)
}

func TestPersist_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, Persist(ctx, store, User{ClientID: "c9"}))

	got, err := Restore(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, User{ClientID: "c9"}, got)
}

func TestSignIn_RejectsBadToken(t *testing.T) {
	_, err := SignIn(context.Background(), session.NewMemoryStore(), User{ClientID: "c1"}, "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
