package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/shared/authorization"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "identity")

	token, err := svc.Generate(42, authorization.RoleCustomer, time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleCustomer, claims.Role)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "identity")

	expired, err := svc.Generate(1, authorization.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other", "identity").Generate(1, authorization.RoleAdmin, time.Minute)
	require.NoError(t, err)

	otherIssuer, err := NewJWTService("secret", "someone-else").Generate(1, authorization.RoleAdmin, time.Minute)
	require.NoError(t, err)

	noUser, err := svc.Generate(0, authorization.RoleAdmin, time.Minute)
	require.NoError(t, err)

	badRole, err := svc.Generate(1, authorization.UserRole("root"), time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: authorization.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"missing user": noUser,
		"unknown role": badRole,
		"unsigned":     none,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.Error(t, err)
		})
	}
}
