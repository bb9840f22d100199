package db

import (
	"context"
	"fmt"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateReport(ctx context.Context, pool *pgxpool.Pool, rtype string, filename *string, reportedFor, notes string, createdBy int) (*models.Report, error) {
	query := `
		INSERT INTO reports (type, filename, reported_for, notes, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, type, filename, uploaded_at, reported_for, notes, created_by
	`
	var r models.Report
	err := pool.QueryRow(ctx, query, rtype, filename, reportedFor, notes, createdBy).
		Scan(&r.ID, &r.Type, &r.Filename, &r.UploadedAt, &r.ReportedFor, &r.Notes, &r.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func GetReportByID(ctx context.Context, pool *pgxpool.Pool, reportID int) (*models.Report, error) {
	query := `
		SELECT id, type, filename, uploaded_at, reported_for, notes, created_by
		FROM reports WHERE id = $1
	`
	var r models.Report
	err := pool.QueryRow(ctx, query, reportID).
		Scan(&r.ID, &r.Type, &r.Filename, &r.UploadedAt, &r.ReportedFor, &r.Notes, &r.CreatedBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func GetAllReports(ctx context.Context, pool *pgxpool.Pool) ([]models.Report, error) {
	query := `
		SELECT id, type, filename, uploaded_at, reported_for, notes, created_by
		FROM reports ORDER BY uploaded_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.Type, &r.Filename, &r.UploadedAt, &r.ReportedFor, &r.Notes, &r.CreatedBy); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// UpdateReport keeps the existing filename unless the caller passes a new one.
func UpdateReport(ctx context.Context, pool *pgxpool.Pool, reportID int, rtype, reportedFor, notes string, filename *string) (*models.Report, error) {
	query := `
		UPDATE reports
		SET type = $1, reported_for = $2, notes = $3,
		    filename = COALESCE($4, filename)
		WHERE id = $5
		RETURNING id, type, filename, uploaded_at, reported_for, notes, created_by
	`
	var r models.Report
	err := pool.QueryRow(ctx, query, rtype, reportedFor, notes, filename, reportID).
		Scan(&r.ID, &r.Type, &r.Filename, &r.UploadedAt, &r.ReportedFor, &r.Notes, &r.CreatedBy)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func DeleteReport(ctx context.Context, pool *pgxpool.Pool, reportID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("report %d: %w", reportID, models.ErrNotFound)
	}
	return nil
}
