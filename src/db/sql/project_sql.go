package db

import (
	"context"
	"fmt"
	"time"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateProject(ctx context.Context, pool *pgxpool.Pool, name string, startDate, endDate *time.Time, details, status string, filename *string, createdBy int) (*models.Project, error) {
	query := `
		INSERT INTO projects (name, start_date, end_date, details, status, filename, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, start_date, end_date, details, status, filename, created_by, created_at
	`
	var p models.Project
	err := pool.QueryRow(ctx, query, name, startDate, endDate, details, status, filename, createdBy).
		Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Details, &p.Status, &p.Filename, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetProjectByID(ctx context.Context, pool *pgxpool.Pool, projectID int) (*models.Project, error) {
	query := `
		SELECT id, name, start_date, end_date, details, status, filename, created_by, created_at
		FROM projects WHERE id = $1
	`
	var p models.Project
	err := pool.QueryRow(ctx, query, projectID).
		Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Details, &p.Status, &p.Filename, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func GetAllProjects(ctx context.Context, pool *pgxpool.Pool) ([]models.Project, error) {
	query := `
		SELECT id, name, start_date, end_date, details, status, filename, created_by, created_at
		FROM projects ORDER BY start_date DESC NULLS LAST, id DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Details, &p.Status, &p.Filename, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject updates the editable fields; the stored filename is replaced
// only when a new upload was provided.
func UpdateProject(ctx context.Context, pool *pgxpool.Pool, projectID int, name string, startDate, endDate *time.Time, details, status string, filename *string) (*models.Project, error) {
	if filename != nil {
		if _, err := pool.Exec(ctx, `UPDATE projects SET filename = $1 WHERE id = $2`, filename, projectID); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE projects SET name = $1, start_date = $2, end_date = $3, details = $4, status = $5
		WHERE id = $6
		RETURNING id, name, start_date, end_date, details, status, filename, created_by, created_at
	`
	var p models.Project
	err := pool.QueryRow(ctx, query, name, startDate, endDate, details, status, projectID).
		Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Details, &p.Status, &p.Filename, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func DeleteProject(ctx context.Context, pool *pgxpool.Pool, projectID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", projectID, models.ErrNotFound)
	}
	return nil
}
