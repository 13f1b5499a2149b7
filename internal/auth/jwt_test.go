package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "vibetrack", time.Hour)

	token, err := m.GenerateAccessToken("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	username, err := m.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", "vibetrack", time.Hour)

	_, err := m.ValidateAccessToken("")
	assert.Error(t, err)

	_, err = m.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "vibetrack", time.Hour)
	verifier := NewJWTManager("secret-b", "vibetrack", time.Hour)

	token, err := issuer.GenerateAccessToken("alice")
	assert.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTManager("test-secret", "other-app", time.Hour)
	verifier := NewJWTManager("test-secret", "vibetrack", time.Hour)

	token, err := issuer.GenerateAccessToken("alice")
	assert.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorContains(t, err, "issuer")
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "vibetrack", -time.Minute)

	token, err := m.GenerateAccessToken("alice")
	assert.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("password1")
	assert.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, VerifyPassword("password1", hash))
	assert.False(t, VerifyPassword("password2", hash))
}
