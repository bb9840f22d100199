package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEntryIncrease(t *testing.T) {
	balance, err := ApplyEntry(100, EntryIncrease, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
}

func TestApplyEntryDecrease(t *testing.T) {
	balance, err := ApplyEntry(500, EntryDecrease, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestApplyEntryInsufficientBalance(t *testing.T) {
	balance, err := ApplyEntry(100, EntryDecrease, 101)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(100), balance, "balance must be unchanged on refusal")
}

func TestApplyEntryUnknownType(t *testing.T) {
	_, err := ApplyEntry(100, "transfer", 10)
	assert.Error(t, err)
}

func TestValidEntryType(t *testing.T) {
	assert.True(t, ValidEntryType(EntryIncrease))
	assert.True(t, ValidEntryType(EntryDecrease))
	assert.False(t, ValidEntryType(""))
	assert.False(t, ValidEntryType("Increase"))
}
