package models

import "time"

// Allocation is a proposed transfer of funds from a budget to a project.
// Approval produces a linked decrease entry against the budget; removing an
// approved allocation produces the reverse increase entry.
type Allocation struct {
	ID              int        `json:"id"`
	ProjectID       int        `json:"project_id"`
	BudgetID        int        `json:"budget_id"`
	AllocatedAmount int64      `json:"allocated_amount"`
	Status          string     `json:"status"`
	CreatedBy       int        `json:"created_by"`
	ApprovedBy      *int       `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	CreatedAt       time.Time  `json:"created_at"`
}
