package models

import "fmt"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	EntryIncrease = "increase"
	EntryDecrease = "decrease"
)

func ValidEntryType(t string) bool {
	return t == EntryIncrease || t == EntryDecrease
}

// ApplyEntry returns the balance after an approved entry takes effect. A
// decrease larger than the balance fails with ErrInsufficientBalance and the
// balance is returned unchanged.
func ApplyEntry(balance int64, entryType string, amount int64) (int64, error) {
	switch entryType {
	case EntryIncrease:
		return balance + amount, nil
	case EntryDecrease:
		if amount > balance {
			return balance, ErrInsufficientBalance
		}
		return balance - amount, nil
	}
	return balance, fmt.Errorf("unknown entry type %q", entryType)
}
