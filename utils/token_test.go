package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, nil)

	token, expiresAt, err := svc.Issue("64b7f0c2a1b2c3d4e5f60718", "admin@example.org", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "admin@example.org", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, claims.UserID, claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService(testSecret, time.Minute, nil)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService(testSecret, time.Hour, nil)
	token, _, err := issuer.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)

	other := NewTokenService("another-secret-0123456789", time.Hour, nil)
	_, err = other.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateMalformedToken(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, nil)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(context.Background(), tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, tok)
	}
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := NewTokenService(testSecret, time.Hour, nil)
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRequiresUserID(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, nil)
	token, _, err := svc.Issue("", "a@x.com", "admin")
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeWithoutDenylist(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, nil)
	token, _, err := svc.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)
	claims, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)

	revoked, err := svc.Revoke(context.Background(), claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = svc.Validate(context.Background(), token)
	assert.NoError(t, err)
}

func TestRevokeWithRedisDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewTokenService(testSecret, 30*time.Minute, NewRedisDenylist(client))
	ctx := context.Background()

	token, _, err := svc.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)
	claims, err := svc.Validate(ctx, token)
	require.NoError(t, err)

	revoked, err := svc.Revoke(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	ttl := mr.TTL(revokedKeyPrefix + claims.ID)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	other, _, err := svc.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)
	_, err = svc.Validate(ctx, other)
	assert.NoError(t, err)
}

func TestValidateDenylistUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewTokenService(testSecret, time.Hour, NewRedisDenylist(client))
	token, _, err := svc.Issue("u1", "a@x.com", "admin")
	require.NoError(t, err)

	mr.Close()
	_, err = svc.Validate(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenRevoked)
}
