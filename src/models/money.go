package models

import (
	"fmt"
	"strings"
)

// Amounts are stored as centavos in BIGINT columns. Form input arrives as a
// decimal string ("10000", "10,000.00", "250.5") and must be non-negative
// with at most two fraction digits.

func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	var cents int64
	for _, c := range whole {
		if c < '0' || c > '9' {
			return 0, ErrInvalidAmount
		}
		cents = cents*10 + int64(c-'0')
		if cents > 1<<52 {
			return 0, ErrInvalidAmount
		}
	}
	cents *= 100

	mult := int64(10)
	for _, c := range frac {
		if c < '0' || c > '9' {
			return 0, ErrInvalidAmount
		}
		cents += int64(c-'0') * mult
		mult /= 10
	}

	return cents, nil
}

// FormatAmount renders centavos as a plain decimal string ("7000.00").
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
