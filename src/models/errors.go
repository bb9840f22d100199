package models

import "errors"

// Sentinel errors returned by the db layer. Handlers map these to HTTP
// statuses instead of collapsing every failure into a 500.
var (
	ErrNotFound            = errors.New("record not found")
	ErrNotPending          = errors.New("not pending")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateAllocation = errors.New("an active allocation already exists for this project and budget")
	ErrNotApproved         = errors.New("allocation is not approved")
	ErrNotOwner            = errors.New("entry belongs to another user")
	ErrInvalidAmount       = errors.New("invalid amount")
)
