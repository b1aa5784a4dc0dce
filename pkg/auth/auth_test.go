package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerifier_EmptySecret(t *testing.T) {
	_, err := NewVerifier("")
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	verifier, err := NewVerifier("test-secret")
	require.NoError(t, err)

	token, err := verifier.CreateToken("user-1", "Alpha", time.Hour)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "Alpha", claims.Username)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewVerifier("issuer-secret")
	require.NoError(t, err)
	verifier, err := NewVerifier("other-secret")
	require.NoError(t, err)

	token, err := issuer.CreateToken("user-1", "Alpha", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	verifier, err := NewVerifier("test-secret")
	require.NoError(t, err)

	token, err := verifier.CreateToken("user-1", "Alpha", -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_MissingUID(t *testing.T) {
	verifier, err := NewVerifier("test-secret")
	require.NoError(t, err)

	token, err := verifier.CreateToken("", "Alpha", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	verifier, err := NewVerifier("test-secret")
	require.NoError(t, err)

	_, err = verifier.Verify("not-a-token")
	assert.Error(t, err)
}
