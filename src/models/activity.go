package models

import "time"

// Activity types recorded against a budget. The history table is append-only;
// rows are never updated or deleted.
const (
	ActivityBudgetCreated       = "budget_created"
	ActivityEntryCreated        = "entry_created"
	ActivityEntryUpdated        = "entry_updated"
	ActivityEntryApproved       = "entry_approved"
	ActivityEntryRejected       = "entry_rejected"
	ActivityAllocationRequested = "allocation_requested"
	ActivityAllocationApproved  = "allocation_approved"
	ActivityAllocationRejected  = "allocation_rejected"
	ActivityAllocationRemoved   = "allocation_removed"
)

type ActivityRecord struct {
	ID            int       `json:"id"`
	BudgetID      int       `json:"budget_id"`
	EntryID       *int      `json:"entry_id"`
	ProjectID     *int      `json:"project_id"`
	ActivityType  string    `json:"activity_type"`
	Description   string    `json:"description"`
	AmountChanged int64     `json:"amount_changed"`
	OldBalance    int64     `json:"old_balance"`
	NewBalance    int64     `json:"new_balance"`
	PerformedBy   int       `json:"performed_by"`
	PerformedAt   time.Time `json:"performed_at"`
}
