package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	// same input hashes to a different string every time (random salt)
	hash2, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "s3cret-pw"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
	assert.False(t, CompareHashAndPassword(hash, ""))
	assert.False(t, CompareHashAndPassword("not-a-hash", "s3cret-pw"))
}
