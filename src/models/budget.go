package models

import "time"

type Budget struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	TotalAmount    int64     `json:"total_amount"`
	CurrentBalance int64     `json:"current_balance"`
	CreatedBy      int       `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

type BudgetEntry struct {
	ID               int        `json:"id"`
	BudgetID         int        `json:"budget_id"`
	EntryType        string     `json:"entry_type"`
	Amount           int64      `json:"amount"`
	Description      string     `json:"description"`
	EntryDate        time.Time  `json:"entry_date"`
	Status           string     `json:"status"`
	CreatedBy        int        `json:"created_by"`
	ApprovedBy       *int       `json:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at"`
	EvidenceFilename *string    `json:"evidence_filename"`
	ProjectID        *int       `json:"project_id"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewEntry carries validated form input for a ledger entry.
type NewEntry struct {
	BudgetID         int
	EntryType        string
	Amount           int64
	Description      string
	EntryDate        time.Time
	EvidenceFilename *string
	ProjectID        *int
}
