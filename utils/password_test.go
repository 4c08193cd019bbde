package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordLengthAndCharset(t *testing.T) {
	password, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, password, PasswordLength)

	for _, r := range password {
		assert.True(t, strings.ContainsRune(PasswordCharset, r),
			"unexpected character %q in generated password", r)
	}
}

func TestGeneratePasswordIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword()
		require.NoError(t, err)
		assert.False(t, seen[password], "generated password repeated")
		seen[password] = true
	}
}
