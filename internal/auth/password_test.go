package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("short"))
}
