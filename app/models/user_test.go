package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("rider", "rider@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "rider", user.Name)
	assert.Equal(t, "rider@example.com", user.Email)
	assert.Equal(t, ROLE_USER, user.Role)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.True(t, user.IsActive())

	// Stored as a bcrypt hash, never the plaintext.
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("rider", "not-an-email", "secret123")
	assert.Error(t, err)

	_, err = CreateUser("rider", "rider@example.com", "short")
	assert.Error(t, err)

	_, err = CreateUser("ab", "rider@example.com", "secret123")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	user, err := CreateUser("rider", "rider@example.com", "secret123")
	require.NoError(t, err)
	oldHash := user.Password

	require.NoError(t, user.SetPassword("another-one"))

	assert.NotEqual(t, oldHash, user.Password)
	assert.True(t, user.CheckPassword("another-one"))
	assert.False(t, user.CheckPassword("secret123"))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
	assert.False(t, CheckPasswordHash("secret123", "not-a-hash"))
}
