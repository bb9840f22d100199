package db

import (
	"context"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// insertActivity appends one audit row. It runs on the caller's transaction
// so the audit trail commits or rolls back together with the balance
// mutation it describes.
func insertActivity(ctx context.Context, tx pgx.Tx, a *models.ActivityRecord) error {
	query := `
		INSERT INTO budget_activity_history
			(budget_id, entry_id, project_id, activity_type, description, amount_changed, old_balance, new_balance, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Exec(ctx, query,
		a.BudgetID, a.EntryID, a.ProjectID, a.ActivityType, a.Description,
		a.AmountChanged, a.OldBalance, a.NewBalance, a.PerformedBy)
	return err
}

func GetActivityForBudget(ctx context.Context, pool *pgxpool.Pool, budgetID, limit int) ([]models.ActivityRecord, error) {
	query := `
		SELECT id, budget_id, entry_id, project_id, activity_type, description, amount_changed, old_balance, new_balance, performed_by, performed_at
		FROM budget_activity_history
		WHERE budget_id = $1
		ORDER BY performed_at DESC, id DESC
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, budgetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ActivityRecord
	for rows.Next() {
		var a models.ActivityRecord
		if err := rows.Scan(&a.ID, &a.BudgetID, &a.EntryID, &a.ProjectID, &a.ActivityType, &a.Description,
			&a.AmountChanged, &a.OldBalance, &a.NewBalance, &a.PerformedBy, &a.PerformedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
