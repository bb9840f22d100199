package db

import (
	"context"
	"fmt"

	"sk-ims/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateUser(ctx context.Context, pool *pgxpool.Pool, fullname, username, passwordHash, role string) (*models.User, error) {
	query := `
		INSERT INTO users (fullname, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fullname, username, password_hash, role, created_at
	`
	var u models.User
	err := pool.QueryRow(ctx, query, fullname, username, passwordHash, role).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	query := `
		SELECT id, fullname, username, password_hash, role, created_at
		FROM users WHERE username = $1
	`
	var u models.User
	err := pool.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, userID int) (*models.User, error) {
	query := `
		SELECT id, fullname, username, password_hash, role, created_at
		FROM users WHERE id = $1
	`
	var u models.User
	err := pool.QueryRow(ctx, query, userID).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func GetAllUsers(ctx context.Context, pool *pgxpool.Pool) ([]models.User, error) {
	query := `
		SELECT id, fullname, username, password_hash, role, created_at
		FROM users ORDER BY id ASC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser updates account fields; the password hash is only replaced when
// newPasswordHash is non-empty.
func UpdateUser(ctx context.Context, pool *pgxpool.Pool, userID int, fullname, username, role, newPasswordHash string) (*models.User, error) {
	var u models.User
	var err error
	if newPasswordHash != "" {
		query := `
			UPDATE users SET fullname = $1, username = $2, role = $3, password_hash = $4
			WHERE id = $5
			RETURNING id, fullname, username, password_hash, role, created_at
		`
		err = pool.QueryRow(ctx, query, fullname, username, role, newPasswordHash, userID).
			Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	} else {
		query := `
			UPDATE users SET fullname = $1, username = $2, role = $3
			WHERE id = $4
			RETURNING id, fullname, username, password_hash, role, created_at
		`
		err = pool.QueryRow(ctx, query, fullname, username, role, userID).
			Scan(&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func DeleteUser(ctx context.Context, pool *pgxpool.Pool, userID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return nil
}
