package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSettingsIssueAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 1}

	rawKey, err := us.IssueAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rawKey, "rdw_"))
	assert.GreaterOrEqual(t, len(rawKey), 12)
	assert.Equal(t, rawKey[:16], us.APIKeyPrefix)
	assert.Equal(t, HashAPIKey(rawKey), us.APIKeyHash)
	assert.NotNil(t, us.APIKeyCreatedAt)
	assert.Nil(t, us.APIKeyRevokedAt)
	assert.Nil(t, us.APIKeyLastUsedAt)
	assert.True(t, us.HasActiveAPIKey())
}

func TestUserSettingsIssueAPIKeyRotates(t *testing.T) {
	us := &UserSettings{UserID: 1}

	first, err := us.IssueAPIKey()
	require.NoError(t, err)
	firstHash := us.APIKeyHash

	second, err := us.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, firstHash, us.APIKeyHash)
	assert.Equal(t, HashAPIKey(second), us.APIKeyHash)
}

func TestUserSettingsRevokeAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 1}
	_, err := us.IssueAPIKey()
	require.NoError(t, err)

	us.RevokeAPIKey()

	assert.Empty(t, us.APIKeyHash)
	assert.Empty(t, us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyRevokedAt)
	assert.Nil(t, us.APIKeyLastUsedAt)
	assert.False(t, us.HasActiveAPIKey())
}

func TestUserSettingsTouchAPIKeyUsage(t *testing.T) {
	us := &UserSettings{UserID: 1}
	_, err := us.IssueAPIKey()
	require.NoError(t, err)
	require.Nil(t, us.APIKeyLastUsedAt)

	us.TouchAPIKeyUsage()

	assert.NotNil(t, us.APIKeyLastUsedAt)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("rdw_abc"), HashAPIKey("  rdw_abc \n"))
	assert.Len(t, HashAPIKey("rdw_abc"), 64)
}

func TestHasActiveAPIKeyNilReceiver(t *testing.T) {
	var us *UserSettings
	assert.False(t, us.HasActiveAPIKey())
}
