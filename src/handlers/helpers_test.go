package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"sk-ims/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrNotPending, http.StatusConflict},
		{models.ErrInsufficientBalance, http.StatusConflict},
		{models.ErrDuplicateAllocation, http.StatusConflict},
		{models.ErrNotApproved, http.StatusConflict},
		{models.ErrNotOwner, http.StatusForbidden},
		{models.ErrInvalidAmount, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ledgerErrorStatus(c.err), c.err.Error())
	}
}

func TestLedgerErrorStatusUnwraps(t *testing.T) {
	wrapped := errors.Join(errors.New("budget 4"), models.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, ledgerErrorStatus(wrapped))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), *d)

	_, err = parseDate("31/08/2026")
	assert.Error(t, err)
}
