package db

import (
	"context"
	"fmt"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateLogbookEntry(ctx context.Context, pool *pgxpool.Pool, e *models.LogbookEntry) (*models.LogbookEntry, error) {
	query := `
		INSERT INTO logbook (first_name, middle_name, last_name, sitio, time_in, time_out, date, concern)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, first_name, middle_name, last_name, sitio, time_in, time_out, date, concern
	`
	var out models.LogbookEntry
	err := pool.QueryRow(ctx, query, e.FirstName, e.MiddleName, e.LastName, e.Sitio, e.TimeIn, e.TimeOut, e.Date, e.Concern).
		Scan(&out.ID, &out.FirstName, &out.MiddleName, &out.LastName, &out.Sitio, &out.TimeIn, &out.TimeOut, &out.Date, &out.Concern)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func GetLogbookEntryByID(ctx context.Context, pool *pgxpool.Pool, entryID int) (*models.LogbookEntry, error) {
	query := `
		SELECT id, first_name, middle_name, last_name, sitio, time_in, time_out, date, concern
		FROM logbook WHERE id = $1
	`
	var e models.LogbookEntry
	err := pool.QueryRow(ctx, query, entryID).
		Scan(&e.ID, &e.FirstName, &e.MiddleName, &e.LastName, &e.Sitio, &e.TimeIn, &e.TimeOut, &e.Date, &e.Concern)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func GetAllLogbookEntries(ctx context.Context, pool *pgxpool.Pool) ([]models.LogbookEntry, error) {
	query := `
		SELECT id, first_name, middle_name, last_name, sitio, time_in, time_out, date, concern
		FROM logbook ORDER BY date DESC, id DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LogbookEntry
	for rows.Next() {
		var e models.LogbookEntry
		if err := rows.Scan(&e.ID, &e.FirstName, &e.MiddleName, &e.LastName, &e.Sitio, &e.TimeIn, &e.TimeOut, &e.Date, &e.Concern); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func UpdateLogbookEntry(ctx context.Context, pool *pgxpool.Pool, entryID int, e *models.LogbookEntry) (*models.LogbookEntry, error) {
	query := `
		UPDATE logbook
		SET first_name = $1, middle_name = $2, last_name = $3, sitio = $4,
		    time_in = $5, time_out = $6, date = $7, concern = $8
		WHERE id = $9
		RETURNING id, first_name, middle_name, last_name, sitio, time_in, time_out, date, concern
	`
	var out models.LogbookEntry
	err := pool.QueryRow(ctx, query, e.FirstName, e.MiddleName, e.LastName, e.Sitio, e.TimeIn, e.TimeOut, e.Date, e.Concern, entryID).
		Scan(&out.ID, &out.FirstName, &out.MiddleName, &out.LastName, &out.Sitio, &out.TimeIn, &out.TimeOut, &out.Date, &out.Concern)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func DeleteLogbookEntry(ctx context.Context, pool *pgxpool.Pool, entryID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM logbook WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("logbook entry %d: %w", entryID, models.ErrNotFound)
	}
	return nil
}
