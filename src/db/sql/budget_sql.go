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

const budgetColumns = "id, name, total_amount, current_balance, created_by, created_at"
const entryColumns = "id, budget_id, entry_type, amount, description, entry_date, status, created_by, approved_by, approved_at, evidence_filename, project_id, created_at"

// lockBudget loads the budget row under FOR UPDATE so concurrent balance
// mutations against the same budget serialize instead of double-spending.
func lockBudget(ctx context.Context, tx pgx.Tx, budgetID int) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 FOR UPDATE`
	var b models.Budget
	err := tx.QueryRow(ctx, query, budgetID).
		Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CurrentBalance, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget %d: %w", budgetID, models.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func getEntryTx(ctx context.Context, tx pgx.Tx, budgetID, entryID int) (*models.BudgetEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM budget_entries WHERE id = $1 AND budget_id = $2`
	var e models.BudgetEntry
	err := tx.QueryRow(ctx, query, entryID, budgetID).
		Scan(&e.ID, &e.BudgetID, &e.EntryType, &e.Amount, &e.Description, &e.EntryDate, &e.Status,
			&e.CreatedBy, &e.ApprovedBy, &e.ApprovedAt, &e.EvidenceFilename, &e.ProjectID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry %d: %w", entryID, models.ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func setBalance(ctx context.Context, tx pgx.Tx, budgetID int, balance int64) error {
	_, err := tx.Exec(ctx, `UPDATE budgets SET current_balance = $1 WHERE id = $2`, balance, budgetID)
	return err
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, in models.NewEntry, status string, createdBy int, approvedBy *int) (*models.BudgetEntry, error) {
	query := `
		INSERT INTO budget_entries (budget_id, entry_type, amount, description, entry_date, status, created_by, approved_by, approved_at, evidence_filename, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $6 = 'approved' THEN NOW() END, $9, $10)
		RETURNING ` + entryColumns + `
	`
	var e models.BudgetEntry
	err := tx.QueryRow(ctx, query, in.BudgetID, in.EntryType, in.Amount, in.Description, in.EntryDate,
		status, createdBy, approvedBy, in.EvidenceFilename, in.ProjectID).
		Scan(&e.ID, &e.BudgetID, &e.EntryType, &e.Amount, &e.Description, &e.EntryDate, &e.Status,
			&e.CreatedBy, &e.ApprovedBy, &e.ApprovedAt, &e.EvidenceFilename, &e.ProjectID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateBudget inserts the budget and, for a non-zero initial amount, its
// seeding increase entry. A creator whose role auto-approves starts the
// balance at the initial amount; anyone else leaves it at zero with the entry
// pending until the chairman approves it.
func CreateBudget(ctx context.Context, pool *pgxpool.Pool, name string, initial int64, user models.AuthUser) (*models.Budget, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	auto := models.AutoApproves(user.Role)
	balance := int64(0)
	if auto {
		balance = initial
	}

	query := `
		INSERT INTO budgets (name, total_amount, current_balance, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + budgetColumns + `
	`
	var b models.Budget
	err = tx.QueryRow(ctx, query, name, initial, balance, user.ID).
		Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CurrentBalance, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		return nil, err
	}

	var entryID *int
	if initial > 0 {
		status := models.StatusPending
		var approver *int
		if auto {
			status = models.StatusApproved
			approver = &user.ID
		}
		entry, err := insertEntryTx(ctx, tx, models.NewEntry{
			BudgetID:    b.ID,
			EntryType:   models.EntryIncrease,
			Amount:      initial,
			Description: "Initial allocation",
			EntryDate:   time.Now(),
		}, status, user.ID, approver)
		if err != nil {
			return nil, err
		}
		entryID = &entry.ID
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      b.ID,
		EntryID:       entryID,
		ActivityType:  models.ActivityBudgetCreated,
		Description:   fmt.Sprintf("Budget %q created with initial amount %s", name, models.FormatAmount(initial)),
		AmountChanged: balance,
		OldBalance:    0,
		NewBalance:    balance,
		PerformedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, budgetID int) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budgetID).
		Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CurrentBalance, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget %d: %w", budgetID, models.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func GetAllBudgets(ctx context.Context, pool *pgxpool.Pool) ([]models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CurrentBalance, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func GetEntriesForBudget(ctx context.Context, pool *pgxpool.Pool, budgetID int) ([]models.BudgetEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM budget_entries WHERE budget_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.BudgetEntry
	for rows.Next() {
		var e models.BudgetEntry
		if err := rows.Scan(&e.ID, &e.BudgetID, &e.EntryType, &e.Amount, &e.Description, &e.EntryDate, &e.Status,
			&e.CreatedBy, &e.ApprovedBy, &e.ApprovedAt, &e.EvidenceFilename, &e.ProjectID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateEntry records an increase or decrease request. Entries by an
// auto-approving role take effect immediately inside the same transaction; a
// decrease that exceeds the balance fails with ErrInsufficientBalance.
// Everyone else's entry is stored pending with no balance effect.
func CreateEntry(ctx context.Context, pool *pgxpool.Pool, in models.NewEntry, user models.AuthUser) (*models.BudgetEntry, error) {
	if !models.ValidEntryType(in.EntryType) {
		return nil, fmt.Errorf("entry type %q: %w", in.EntryType, models.ErrInvalidAmount)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, in.BudgetID)
	if err != nil {
		return nil, err
	}

	status := models.StatusPending
	var approver *int
	oldBalance := b.CurrentBalance
	newBalance := b.CurrentBalance

	if models.AutoApproves(user.Role) {
		newBalance, err = models.ApplyEntry(b.CurrentBalance, in.EntryType, in.Amount)
		if err != nil {
			return nil, err
		}
		status = models.StatusApproved
		approver = &user.ID
		if err := setBalance(ctx, tx, b.ID, newBalance); err != nil {
			return nil, err
		}
	}

	entry, err := insertEntryTx(ctx, tx, in, status, user.ID, approver)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      b.ID,
		EntryID:       &entry.ID,
		ProjectID:     in.ProjectID,
		ActivityType:  models.ActivityEntryCreated,
		Description:   fmt.Sprintf("%s entry of %s recorded (%s)", in.EntryType, models.FormatAmount(in.Amount), status),
		AmountChanged: newBalance - oldBalance,
		OldBalance:    oldBalance,
		NewBalance:    newBalance,
		PerformedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdatePendingEntry is the one edit path an entry has: its creator may amend
// it while it is still pending.
func UpdatePendingEntry(ctx context.Context, pool *pgxpool.Pool, budgetID, entryID int, amount int64, description string, entryDate time.Time, user models.AuthUser) (*models.BudgetEntry, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}
	e, err := getEntryTx(ctx, tx, budgetID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}
	if e.CreatedBy != user.ID && !user.IsSuperAdmin() {
		return nil, models.ErrNotOwner
	}

	query := `
		UPDATE budget_entries SET amount = $1, description = $2, entry_date = $3
		WHERE id = $4
		RETURNING ` + entryColumns + `
	`
	var out models.BudgetEntry
	err = tx.QueryRow(ctx, query, amount, description, entryDate, entryID).
		Scan(&out.ID, &out.BudgetID, &out.EntryType, &out.Amount, &out.Description, &out.EntryDate, &out.Status,
			&out.CreatedBy, &out.ApprovedBy, &out.ApprovedAt, &out.EvidenceFilename, &out.ProjectID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &out.ID,
		ActivityType:  models.ActivityEntryUpdated,
		Description:   fmt.Sprintf("pending %s entry amended to %s", out.EntryType, models.FormatAmount(out.Amount)),
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
	return &out, nil
}

// ApproveEntry moves a pending entry to approved and applies it to the
// balance. A decrease larger than the current balance fails with
// ErrInsufficientBalance and leaves the entry pending. Approving an entry
// that already left pending fails with ErrNotPending and changes nothing.
func ApproveEntry(ctx context.Context, pool *pgxpool.Pool, budgetID, entryID int, approver models.AuthUser) (*models.BudgetEntry, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}
	e, err := getEntryTx(ctx, tx, budgetID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	newBalance, err := models.ApplyEntry(b.CurrentBalance, e.EntryType, e.Amount)
	if err != nil {
		return nil, err
	}
	if err := setBalance(ctx, tx, b.ID, newBalance); err != nil {
		return nil, err
	}

	query := `
		UPDATE budget_entries SET status = 'approved', approved_by = $1, approved_at = NOW()
		WHERE id = $2
		RETURNING ` + entryColumns + `
	`
	var out models.BudgetEntry
	err = tx.QueryRow(ctx, query, approver.ID, entryID).
		Scan(&out.ID, &out.BudgetID, &out.EntryType, &out.Amount, &out.Description, &out.EntryDate, &out.Status,
			&out.CreatedBy, &out.ApprovedBy, &out.ApprovedAt, &out.EvidenceFilename, &out.ProjectID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &out.ID,
		ProjectID:     out.ProjectID,
		ActivityType:  models.ActivityEntryApproved,
		Description:   fmt.Sprintf("%s entry of %s approved", out.EntryType, models.FormatAmount(out.Amount)),
		AmountChanged: newBalance - b.CurrentBalance,
		OldBalance:    b.CurrentBalance,
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

// RejectEntry moves a pending entry to rejected. No balance effect.
func RejectEntry(ctx context.Context, pool *pgxpool.Pool, budgetID, entryID int, approver models.AuthUser) (*models.BudgetEntry, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBudget(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}
	e, err := getEntryTx(ctx, tx, budgetID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	query := `
		UPDATE budget_entries SET status = 'rejected', approved_by = $1, approved_at = NOW()
		WHERE id = $2
		RETURNING ` + entryColumns + `
	`
	var out models.BudgetEntry
	err = tx.QueryRow(ctx, query, approver.ID, entryID).
		Scan(&out.ID, &out.BudgetID, &out.EntryType, &out.Amount, &out.Description, &out.EntryDate, &out.Status,
			&out.CreatedBy, &out.ApprovedBy, &out.ApprovedAt, &out.EvidenceFilename, &out.ProjectID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = insertActivity(ctx, tx, &models.ActivityRecord{
		BudgetID:      budgetID,
		EntryID:       &out.ID,
		ActivityType:  models.ActivityEntryRejected,
		Description:   fmt.Sprintf("%s entry of %s rejected", out.EntryType, models.FormatAmount(out.Amount)),
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
