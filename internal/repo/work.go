package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minutes-tracker/internal/dbx"
	"minutes-tracker/internal/models"
)

// ErrNotFound is returned when a row referenced by id or username does not exist.
var ErrNotFound = errors.New("not found")

// WorkRepo persists work entries. It can run over the pool (*sql.DB) or a
// transaction (*sql.Tx) via dbx.DBTX.
type WorkRepo struct {
	db dbx.DBTX
}

func NewWorkRepo(db dbx.DBTX) *WorkRepo {
	return &WorkRepo{db: db}
}

// searchWhere builds the shared filter of the count and page queries. All
// bounds are inclusive; fromDate is mandatory, the rest apply only when set.
func searchWhere(username string, fromDate models.WorkDate, toDate *models.WorkDate, fromTime, toTime *models.DayTime) (string, []any) {
	conds := []string{"u.username = $1", "w.work_date >= $2"}
	args := []any{username, fromDate}

	if toDate != nil {
		args = append(args, *toDate)
		conds = append(conds, fmt.Sprintf("w.work_date <= $%d", len(args)))
	}
	if fromTime != nil {
		args = append(args, *fromTime)
		conds = append(conds, fmt.Sprintf("w.work_time >= $%d", len(args)))
	}
	if toTime != nil {
		args = append(args, *toTime)
		conds = append(conds, fmt.Sprintf("w.work_time <= $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// CountByDateTime counts the works matching the filter for the given user.
func (r *WorkRepo) CountByDateTime(ctx context.Context, username string, fromDate models.WorkDate, toDate *models.WorkDate, fromTime, toTime *models.DayTime) (int64, error) {
	where, args := searchWhere(username, fromDate, toDate, fromTime, toTime)
	query := `
		SELECT COUNT(*)
		FROM works w
		JOIN users u ON u.id = w.user_id
		WHERE ` + where

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count works: %w", err)
	}
	return n, nil
}

// FindByDateTime returns one page (at most models.PageSize rows) of matching
// works, ordered by date descending then time ascending. pageNumber is
// 1-based and passed through unguarded.
func (r *WorkRepo) FindByDateTime(ctx context.Context, username string, fromDate models.WorkDate, toDate *models.WorkDate, fromTime, toTime *models.DayTime, pageNumber int) ([]models.Work, error) {
	where, args := searchWhere(username, fromDate, toDate, fromTime, toTime)
	args = append(args, models.PageSize, (pageNumber-1)*models.PageSize)
	query := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.work_date, w.work_time, w.description, w.minutes
		FROM works w
		JOIN users u ON u.id = w.user_id
		WHERE %s
		ORDER BY w.work_date DESC, w.work_time ASC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find works: %w", err)
	}
	defer rows.Close()

	var works []models.Work
	for rows.Next() {
		var w models.Work
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Time, &w.Description, &w.Minutes); err != nil {
			return nil, fmt.Errorf("scan work: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

// Get returns one work by id, or ErrNotFound.
func (r *WorkRepo) Get(ctx context.Context, id int64) (*models.Work, error) {
	query := `
		SELECT id, user_id, work_date, work_time, description, minutes
		FROM works
		WHERE id = $1
	`

	w := &models.Work{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.UserID, &w.Date, &w.Time, &w.Description, &w.Minutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get work: %w", err)
	}

	return w, nil
}

// Insert stores a new work and sets its id.
func (r *WorkRepo) Insert(ctx context.Context, w *models.Work) error {
	query := `
		INSERT INTO works (user_id, work_date, work_time, description, minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		w.UserID, w.Date, w.Time, w.Description, w.Minutes).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert work: %w", err)
	}
	return nil
}

// Update overwrites date, time, description and minutes of an existing work.
// The owning user is left untouched.
func (r *WorkRepo) Update(ctx context.Context, w *models.Work) error {
	query := `
		UPDATE works
		SET work_date = $1, work_time = $2, description = $3, minutes = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query, w.Date, w.Time, w.Description, w.Minutes, w.ID)
	if err != nil {
		return fmt.Errorf("update work: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("work %d: %w", w.ID, ErrNotFound)
	}
	return nil
}

// Delete removes one work by id, or returns ErrNotFound.
func (r *WorkRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("work %d: %w", id, ErrNotFound)
	}
	return nil
}
