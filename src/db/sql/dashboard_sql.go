package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func GetProjectStatusCounts(ctx context.Context, pool *pgxpool.Pool) ([]StatusCount, error) {
	rows, err := pool.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetLogbookDailyCounts returns visitor counts per day for the month
// containing now.
func GetLogbookDailyCounts(ctx context.Context, pool *pgxpool.Pool, now time.Time) ([]DailyCount, error) {
	rows, err := pool.Query(ctx, `
		SELECT date, COUNT(*)
		FROM logbook
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		GROUP BY date
		ORDER BY date
	`, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func GetReportTypeCounts(ctx context.Context, pool *pgxpool.Pool) ([]TypeCount, error) {
	rows, err := pool.Query(ctx, `SELECT type, COUNT(*) FROM reports GROUP BY type ORDER BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var c TypeCount
		if err := rows.Scan(&c.Type, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetUserTotals returns how many projects and reports the user created.
func GetUserTotals(ctx context.Context, pool *pgxpool.Pool, userID int) (projects int, reports int, err error) {
	if err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE created_by = $1`, userID).Scan(&projects); err != nil {
		return 0, 0, err
	}
	if err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE created_by = $1`, userID).Scan(&reports); err != nil {
		return 0, 0, err
	}
	return projects, reports, nil
}
