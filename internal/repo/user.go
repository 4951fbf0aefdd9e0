package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minutes-tracker/internal/dbx"
	"minutes-tracker/internal/models"
)

// UserRepo persists users.
type UserRepo struct {
	db dbx.DBTX
}

func NewUserRepo(db dbx.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user and returns it with id set.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, max_minutes_per_day
	`

	user := &models.User{}

	err := r.db.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.MaxMinutesPerDay)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername returns one user by username, or ErrNotFound.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, max_minutes_per_day
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.MaxMinutesPerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// UpdateMaxMinutes sets the user's daily minute cap. nil clears the cap.
func (r *UserRepo) UpdateMaxMinutes(ctx context.Context, username string, newMax *int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET max_minutes_per_day = $1 WHERE username = $2`,
		newMax, username)
	if err != nil {
		return fmt.Errorf("update max minutes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return nil
}

// MinutesForDate sums the minutes of all the user's works on one calendar date.
func (r *UserRepo) MinutesForDate(ctx context.Context, username string, day models.WorkDate) (int64, error) {
	query := `
		SELECT COALESCE(SUM(w.minutes), 0)
		FROM works w
		JOIN users u ON u.id = w.user_id
		WHERE u.username = $1 AND w.work_date = $2
	`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, username, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum minutes: %w", err)
	}
	return total, nil
}

// ListOverCap returns the users whose summed minutes for the given date exceed
// their daily cap. Users without a cap are skipped.
func (r *UserRepo) ListOverCap(ctx context.Context, day models.WorkDate) ([]models.CapUsage, error) {
	query := `
		SELECT u.username, SUM(w.minutes), u.max_minutes_per_day
		FROM works w
		JOIN users u ON u.id = w.user_id
		WHERE u.max_minutes_per_day IS NOT NULL AND w.work_date = $1
		GROUP BY u.username, u.max_minutes_per_day
		HAVING SUM(w.minutes) > u.max_minutes_per_day
		ORDER BY u.username
	`

	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("list over cap: %w", err)
	}
	defer rows.Close()

	var list []models.CapUsage
	for rows.Next() {
		var c models.CapUsage
		if err := rows.Scan(&c.Username, &c.Minutes, &c.Cap); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
