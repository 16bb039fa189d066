package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateJWT(t *testing.T) {
	tok, err := GenerateJWT(42, 3, testSecret, 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ValidateJWT(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateJWTEmptySecret(t *testing.T) {
	_, err := GenerateJWT(42, 0, "", 24)
	assert.Error(t, err)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	tok, err := GenerateJWT(42, 0, testSecret, 24)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, "different-secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}

func TestValidateJWTExpired(t *testing.T) {
	claims := &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateJWTRejectsNonHMACAlgorithm(t *testing.T) {
	// alg=none tokens must never validate.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 42})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateJWTRejectsZeroUserID(t *testing.T) {
	tok, err := GenerateJWT(0, 0, testSecret, 24)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")
}

func TestValidateJWTEmptyInputs(t *testing.T) {
	_, err := ValidateJWT("", testSecret)
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token", "")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token", testSecret)
	assert.Error(t, err)
}
