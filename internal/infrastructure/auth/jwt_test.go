package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapskillz/pkg/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "swapskillz-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.Generate("user-1", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.NotEmpty(t, token.ID)

	claims, err := svc.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, token.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), svc.RemainingTTL(claims).Seconds(), 5)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService()

	a, err := svc.Generate("user-1", "user")
	require.NoError(t, err)
	b, err := svc.Generate("user-1", "user")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.Generate("user-1", "user")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestJWTService().Generate("user-1", "user")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", Expiry: time.Hour, Issuer: "swapskillz-test"})
	_, err = other.Validate(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongIssuer(t *testing.T) {
	token, err := newTestJWTService().Generate("user-1", "user")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "someone-else"})
	_, err = other.Validate(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "x",
		Subject:   "user-1",
		Issuer:    "swapskillz-test",
		Audience:  jwt.ClaimStrings{"swapskillz-test"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := newTestJWTService().Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
