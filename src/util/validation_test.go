package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("ana"))
	assert.True(t, ValidateUsername("treasurer_2026"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername(""))
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ValidateUsername(string(long)))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("12345678"))
	assert.False(t, ValidatePassword("1234567"))
}

func TestRequireFields(t *testing.T) {
	missing := RequireFields(map[string]string{
		"fullname": "Ana Cruz",
		"username": "  ",
		"role":     "",
	}, "fullname", "username", "role")
	assert.Equal(t, []string{"username", "role"}, missing)

	assert.Nil(t, RequireFields(map[string]string{"a": "x"}, "a"))
}
