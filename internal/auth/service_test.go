package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testOptions() Options {
	return Options{
		AdminUsername: "admin",
		AdminPassword: "secret",
		JWTSecret:     "test-signing-key",
		TokenTTL:      time.Hour,
	}
}

func TestLoginAndValidate(t *testing.T) {
	service := NewService(testOptions())

	token, err := service.Login("admin", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewService(testOptions())

	_, err := service.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login("someone", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login("admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	options := testOptions()
	options.AdminPassword = ""
	options.AdminPasswordHash = string(hash)
	service := NewService(options)

	token, err := service.Login("admin", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = service.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	service := NewService(testOptions())
	token, err := service.Login("admin", "secret")
	require.NoError(t, err)

	other := testOptions()
	other.JWTSecret = "a-different-key"
	_, err = NewService(other).Validate(token)
	assert.Error(t, err)

	_, err = service.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	options := testOptions()
	options.TokenTTL = -time.Minute
	issuer := NewService(options)
	// NewService floors a non-positive TTL, so sign with the raw options.
	issuer.options.TokenTTL = -time.Minute

	token, err := issuer.Login("admin", "secret")
	require.NoError(t, err)

	_, err = NewService(testOptions()).Validate(token)
	assert.Error(t, err)
}
