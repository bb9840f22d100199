package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const allocationColumns = "id, project_id, budget_id, allocated_amount, status, created_by, approved_by, approved_at, created_at"

func getAllocationTx(ctx context.Context, tx pgx.Tx, budgetID, allocationID int) (*models.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM project_budget_allocations WHERE id = $1 AND budget_id = $2`
	var a models.Allocation
	err := tx.QueryRow(ctx, query, allocationID, budgetID).
		Scan(&a.ID, &a.ProjectID, &a.BudgetID, &a.AllocatedAmount, &a.Status, &a.CreatedBy, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("allocation %d: %w", allocationID, models.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

// RequestAllocation proposes a transfer of budget funds to a project. Only
// one pending or approved allocation may exist per (project, budget) pair.
// The balance is untouched until the chairman approves.
func RequestAllocation(ctx context.Context, pool *pgxpool.Pool, projectID, budgetID int, amount int64, user models.AuthUser) (*models.Allocation, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}

	var active int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM project_budget_allocations
		WHERE project_id = $1 AND budget_id = $2 AND status IN ('pending', 'approved')
	`, projectID, budgetID).Scan(&active)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, models.ErrDuplicateAllocation
	}

	query := `
		INSERT INTO project_budget_allocations (project_id, budget_id, allocated_amount, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + allocationColumns + `
	`
	var a models.Allocation
	err = tx.QueryRow(ctx, query, projectID, budgetID, amount, user.ID).
		Scan(&a.ID, &a.ProjectID, &a.BudgetID, &a.AllocatedAmount, &a.Status, &a.CreatedBy, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		ProjectID:     &projectID,
		ActivityType:  models.ActivityAllocationRequested,
		Description:   fmt.Sprintf("allocation of %s to project %d requested", models.FormatAmount(amount), projectID),
		AmountChanged: 0,
		OldBalance:    b.CurrentBalance,
		NewBalance:    b.CurrentBalance,
		PerformedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &a, nil
}

// ApproveAllocation turns a pending allocation into an approved one, backed
// by a pre-approved decrease entry against the budget. The entry creation and
// the approval are logged as separate activity rows so both stay auditable.
func ApproveAllocation(ctx context.Context, pool *pgxpool.Pool, budgetID, allocationID int, approver models.AuthUser) (*models.Allocation, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}
	a, err := getAllocationTx(ctx, tx, budgetID, allocationID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	newBalance, err := models.ApplyEntry(b.CurrentBalance, models.EntryDecrease, a.AllocatedAmount)
	if err != nil {
		return nil, err
	}
	if err := setBalance(ctx, tx, budgetID, newBalance); err != nil {
		return nil, err
	}

	entry, err := insertEntryTx(ctx, tx, models.NewEntry{
		BudgetID:    budgetID,
		EntryType:   models.EntryDecrease,
		Amount:      a.AllocatedAmount,
		Description: fmt.Sprintf("Allocation to project %d", a.ProjectID),
		EntryDate:   time.Now(),
		ProjectID:   &a.ProjectID,
	}, models.StatusApproved, approver.ID, &approver.ID)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE project_budget_allocations SET status = 'approved', approved_by = $1, approved_at = NOW()
		WHERE id = $2
		RETURNING ` + allocationColumns + `
	`
	var out models.Allocation
	err = tx.QueryRow(ctx, query, approver.ID, allocationID).
		Scan(&out.ID, &out.ProjectID, &out.BudgetID, &out.AllocatedAmount, &out.Status, &out.CreatedBy, &out.ApprovedBy, &out.ApprovedAt, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &entry.ID,
		ProjectID:     &out.ProjectID,
		ActivityType:  models.ActivityEntryCreated,
		Description:   fmt.Sprintf("decrease entry of %s created for allocation %d", models.FormatAmount(out.AllocatedAmount), out.ID),
		AmountChanged: newBalance - b.CurrentBalance,
		OldBalance:    b.CurrentBalance,
		NewBalance:    newBalance,
		PerformedBy:   approver.ID,
	})
	if err != nil {
		return nil, err
	}
	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &entry.ID,
		ProjectID:     &out.ProjectID,
		ActivityType:  models.ActivityAllocationApproved,
		Description:   fmt.Sprintf("allocation of %s to project %d approved", models.FormatAmount(out.AllocatedAmount), out.ProjectID),
		AmountChanged: 0,
		OldBalance:    newBalance,
		NewBalance:    newBalance,
		PerformedBy:   approver.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectAllocation marks a pending allocation rejected. The row is kept, in
// line with the entry state machine. No balance effect.
func RejectAllocation(ctx context.Context, pool *pgxpool.Pool, budgetID, allocationID int, approver models.AuthUser) (*models.Allocation, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}
	a, err := getAllocationTx(ctx, tx, budgetID, allocationID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	query := `
		UPDATE project_budget_allocations SET status = 'rejected', approved_by = $1, approved_at = NOW()
		WHERE id = $2
		RETURNING ` + allocationColumns + `
	`
	var out models.Allocation
	err = tx.QueryRow(ctx, query, approver.ID, allocationID).
		Scan(&out.ID, &out.ProjectID, &out.BudgetID, &out.AllocatedAmount, &out.Status, &out.CreatedBy, &out.ApprovedBy, &out.ApprovedAt, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		ProjectID:     &out.ProjectID,
		ActivityType:  models.ActivityAllocationRejected,
		Description:   fmt.Sprintf("allocation of %s to project %d rejected", models.FormatAmount(out.AllocatedAmount), out.ProjectID),
		AmountChanged: 0,
		OldBalance:    b.CurrentBalance,
		NewBalance:    b.CurrentBalance,
		PerformedBy:   approver.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveAllocation undoes an approved allocation: a pre-approved increase
// entry restores the balance and the allocation row is deleted. This is the
// only hard-delete in the ledger.
func RemoveAllocation(ctx context.Context, pool *pgxpool.Pool, budgetID, allocationID int, user models.AuthUser) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return err
	}
	a, err := getAllocationTx(ctx, tx, budgetID, allocationID)
	if err != nil {
		return err
	}
	if a.Status != models.StatusApproved {
		return models.ErrNotApproved
	}

	newBalance, err := models.ApplyEntry(b.CurrentBalance, models.EntryIncrease, a.AllocatedAmount)
	if err != nil {
		return err
	}
	if err := setBalance(ctx, tx, budgetID, newBalance); err != nil {
		return err
	}

	entry, err := insertEntryTx(ctx, tx, models.NewEntry{
		BudgetID:    budgetID,
		EntryType:   models.EntryIncrease,
		Amount:      a.AllocatedAmount,
		Description: fmt.Sprintf("Allocation to project %d removed", a.ProjectID),
		EntryDate:   time.Now(),
		ProjectID:   &a.ProjectID,
	}, models.StatusApproved, user.ID, &user.ID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM project_budget_allocations WHERE id = $1`, allocationID); err != nil {
		return err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &entry.ID,
		ProjectID:     &a.ProjectID,
		ActivityType:  models.ActivityAllocationRemoved,
		Description:   fmt.Sprintf("approved allocation of %s to project %d removed, balance restored", models.FormatAmount(a.AllocatedAmount), a.ProjectID),
		AmountChanged: newBalance - b.CurrentBalance,
		OldBalance:    b.CurrentBalance,
		NewBalance:    newBalance,
		PerformedBy:   user.ID,
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func GetAllocationsForBudget(ctx context.Context, pool *pgxpool.Pool, budgetID int) ([]models.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM project_budget_allocations WHERE budget_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.BudgetID, &a.AllocatedAmount, &a.Status, &a.CreatedBy, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}
