package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("", time.Hour)
	assert.Error(t, err)
}

func TestSignerRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := signer.GenerateJWT(7, "alice")
	require.NoError(t, err)

	claims, err := signer.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestSignerRejects(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		issuedAt := time.Now().Add(-2 * time.Hour)
		signer.now = func() time.Time { return issuedAt }
		token, err := signer.GenerateJWT(7, "alice")
		require.NoError(t, err)

		signer.now = time.Now
		_, err = signer.VerifyJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSigner("another-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateJWT(7, "alice")
		require.NoError(t, err)

		_, err = signer.VerifyJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = signer.VerifyJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := signer.GenerateJWT(0, "ghost")
		require.NoError(t, err)

		_, err = signer.VerifyJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.VerifyJWT("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
