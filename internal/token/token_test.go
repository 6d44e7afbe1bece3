package token

import (
	"testing"
	"time"

	"github.com/ryanj77/ResturauntBackend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() types.User {
	return types.User{ID: 42, Username: "alice", Email: "a@example.com", Role: "user"}
}

func TestIssueAndParse(t *testing.T) {
	provider := NewProvider("test-secret", time.Hour, 30*24*time.Hour)

	signed, err := provider.Issue(testUser(), false)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := provider.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique jti")
}

func TestIssue_ExtendedLifetime(t *testing.T) {
	provider := NewProvider("test-secret", time.Hour, 48*time.Hour)

	standard, err := provider.Issue(testUser(), false)
	require.NoError(t, err)
	extended, err := provider.Issue(testUser(), true)
	require.NoError(t, err)

	standardClaims, err := provider.Parse(standard)
	require.NoError(t, err)
	extendedClaims, err := provider.Parse(extended)
	require.NoError(t, err)

	assert.True(t, extendedClaims.ExpiresAt.After(standardClaims.ExpiresAt.Time))
}

func TestParse_WrongSecret(t *testing.T) {
	provider := NewProvider("right-secret", time.Hour, 48*time.Hour)
	signed, err := provider.Issue(testUser(), false)
	require.NoError(t, err)

	other := NewProvider("wrong-secret", time.Hour, 48*time.Hour)
	_, err = other.Parse(signed)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	provider := NewProvider("test-secret", -time.Minute, 48*time.Hour)
	signed, err := provider.Issue(testUser(), false)
	require.NoError(t, err)

	_, err = provider.Parse(signed)
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	provider := NewProvider("test-secret", time.Hour, 48*time.Hour)
	_, err := provider.Parse("not.a.jwt")
	assert.Error(t, err)
}
