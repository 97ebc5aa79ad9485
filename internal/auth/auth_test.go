package auth

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("hunter22hunter")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22hunter", h)
	assert.True(t, strings.HasPrefix(h, "$2a$"))

	assert.True(t, CheckPassword(h, "hunter22hunter"))
	assert.False(t, CheckPassword(h, "wrong-password"))
	assert.False(t, CheckPassword("", "hunter22hunter"))
}

func TestRedisSessionStore(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewRedisSessionStore(rdb, "sess:", time.Hour)
	ctx := context.Background()

	sid, err := store.Create(ctx, "01BROKER")
	require.NoError(t, err)
	assert.True(t, mr.Exists("sess:"+sid))
	assert.Equal(t, time.Hour, mr.TTL("sess:"+sid))

	got, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "01BROKER", got)

	require.NoError(t, store.Destroy(ctx, sid))
	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// destroying twice is fine
	require.NoError(t, store.Destroy(ctx, sid))
}

func TestRedisSessionStore_Expires(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewRedisSessionStore(rdb, "", time.Minute)
	ctx := context.Background()

	sid, err := store.Create(ctx, "01BROKER")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSigner(t *testing.T) {
	s := NewSigner([]byte(testSecret), time.Hour)

	tok, err := s.Sign("sid-1")
	require.NoError(t, err)

	sid, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)

	_, err = NewSigner([]byte(strings.Repeat("x", 32)), time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse(tok + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsExpiredAndNone(t *testing.T) {
	expired, err := NewSigner([]byte(testSecret), -time.Minute).Sign("sid-1")
	require.NoError(t, err)
	_, err = NewSigner([]byte(testSecret), time.Hour).Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{SID: "sid-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewSigner([]byte(testSecret), time.Hour).Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Lifecycle(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.SessionConfig{Secret: testSecret, TTL: 24 * time.Hour, CookieName: "clearbroker.sid", Secure: true}
	m := NewManager(NewRedisSessionStore(rdb, "sess:", cfg.TTL), cfg)
	ctx := context.Background()

	ck, err := m.Start(ctx, "01BROKER")
	require.NoError(t, err)
	assert.Equal(t, "clearbroker.sid", ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, 86400, ck.MaxAge)
	assert.Len(t, mr.Keys(), 1)

	sid, brokerID, err := m.Resolve(ctx, ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "01BROKER", brokerID)

	clear, err := m.End(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, -1, clear.MaxAge)
	assert.Empty(t, clear.Value)

	_, _, err = m.Resolve(ctx, ck.Value)
	assert.True(t, IsNotFound(err))
}

func TestManager_ResolveGarbage(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.SessionConfig{Secret: testSecret, TTL: time.Hour, CookieName: "c"}
	m := NewManager(NewRedisSessionStore(rdb, "", cfg.TTL), cfg)

	_, _, err := m.Resolve(context.Background(), "garbage")
	assert.True(t, IsNotFound(err))
}

func TestBrokerIDContext(t *testing.T) {
	_, ok := BrokerIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithBrokerID(context.Background(), "01BROKER")
	id, ok := BrokerIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "01BROKER", id)

	_, ok = BrokerIDFromContext(WithBrokerID(context.Background(), ""))
	assert.False(t, ok)
}
