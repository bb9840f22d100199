package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10000", 1000000},
		{"10,000.00", 1000000},
		{"250.5", 25050},
		{"0.05", 5},
		{".5", 50},
		{"0", 0},
		{"  7000.00  ", 700000},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseAmountRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "   ", "-5", "1.234", "abc", "1,0a0", "12.3.4", "."} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "7000.00", FormatAmount(700000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "-12.34", FormatAmount(-1234))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 123456789} {
		got, err := ParseAmount(FormatAmount(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
