package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Sup3r$ecret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)

	assert.NoError(t, ComparePassword(hash, "Sup3r$ecret"))
	assert.Error(t, ComparePassword(hash, "wrong-password"))
}

func TestComparePassword_CorruptHash(t *testing.T) {
	t.Parallel()

	assert.Error(t, ComparePassword("not-a-bcrypt-hash", "anything"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Sup3r$ecret", true},
		{"valid with space symbol", "Abcdefg1 x", true},
		{"too short", "Ab1$xyz", false},
		{"no uppercase", "sup3r$ecret", false},
		{"no lowercase", "SUP3R$ECRET", false},
		{"no digit", "Super$ecret", false},
		{"no symbol", "Sup3rSecret", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestValidatePassword_TooLong(t *testing.T) {
	t.Parallel()

	long := "Aa1$"
	for len(long) <= PasswordMaxLength {
		long += "abcdefghij"
	}
	assert.ErrorIs(t, ValidatePassword(long), ErrWeakPassword)
}
