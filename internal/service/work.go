package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"minutes-tracker/internal/dbx"
	"minutes-tracker/internal/models"
	"minutes-tracker/internal/repo"
)

// WorkInput is one element of a save request. Pointer fields distinguish
// absent from zero values; all but ID are required.
type WorkInput struct {
	ID          *int64           `json:"id"`
	Date        *models.WorkDate `json:"date"`
	Time        *models.DayTime  `json:"time"`
	Description *string          `json:"description"`
	Minutes     *int64           `json:"minutes"`
}

// WorkService holds the business rules for searching, saving and deleting
// work entries. Batch mutations run in one transaction each; the search runs
// its count and page queries on one read-only snapshot.
type WorkService struct {
	db *sql.DB
}

func NewWorkService(db *sql.DB) *WorkService {
	return &WorkService{db: db}
}

// Search finds the user's works within the given date/time bounds and returns
// the total match count together with one page of results.
func (s *WorkService) Search(ctx context.Context, username string, fromDate, toDate *models.WorkDate, fromTime, toTime *models.DayTime, pageNumber int) (*models.SearchResult, error) {

	if fromDate == nil || toDate == nil {
		return nil, fmt.Errorf("%w: both the from and to date are needed", ErrValidation)
	}
	if fromDate.After(toDate.Time) {
		return nil, fmt.Errorf("%w: from date cannot be after to date", ErrValidation)
	}
	if fromDate.Equal(toDate.Time) && fromTime != nil && toTime != nil && fromTime.After(*toTime) {
		return nil, fmt.Errorf("%w: on searches on the same day, from time cannot be after to time", ErrValidation)
	}

	result := &models.SearchResult{}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		works := repo.NewWorkRepo(tx)

		count, err := works.CountByDateTime(ctx, username, *fromDate, toDate, fromTime, toTime)
		if err != nil {
			return err
		}
		page, err := works.FindByDateTime(ctx, username, *fromDate, toDate, fromTime, toTime, pageNumber)
		if err != nil {
			return err
		}

		result.Total = count
		result.Works = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("work search", "username", username, "total", result.Total, "page", pageNumber)
	return result, nil
}

// TotalPages derives the page count from a result count at models.PageSize
// rows per page.
func TotalPages(count int64) int64 {
	pages := count / models.PageSize
	if count%models.PageSize > 0 {
		pages++
	}
	return pages
}

// SaveWorks upserts a batch of works for the user inside one transaction.
// Entries with an id overwrite the matching row; entries without an id create
// a new work owned by the user. The output preserves input order.
func (s *WorkService) SaveWorks(ctx context.Context, username string, items []WorkInput) ([]models.Work, error) {
	var saved []models.Work
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		works := repo.NewWorkRepo(tx)
		users := repo.NewUserRepo(tx)

		for _, in := range items {
			w, err := saveWork(ctx, works, users, username, in)
			if err != nil {
				return err
			}
			if w != nil {
				saved = append(saved, *w)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func saveWork(ctx context.Context, works *repo.WorkRepo, users *repo.UserRepo, username string, in WorkInput) (*models.Work, error) {

	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username cannot be blank", ErrValidation)
	}
	if in.Date == nil {
		return nil, fmt.Errorf("%w: date is mandatory", ErrValidation)
	}
	if in.Time == nil {
		return nil, fmt.Errorf("%w: time is mandatory", ErrValidation)
	}
	if in.Description == nil {
		return nil, fmt.Errorf("%w: description is mandatory", ErrValidation)
	}
	if in.Minutes == nil {
		return nil, fmt.Errorf("%w: minutes is mandatory", ErrValidation)
	}

	if in.ID != nil {
		work, err := works.Get(ctx, *in.ID)
		if err != nil {
			return nil, err
		}

		// The fields are overwritten unconditionally; the owner of the row is
		// not checked against the caller.
		work.Date = *in.Date
		work.Time = *in.Time
		work.Description = *in.Description
		work.Minutes = *in.Minutes

		if err := works.Update(ctx, work); err != nil {
			return nil, err
		}
		return work, nil
	}

	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Longstanding quirk: a save for an unknown user is a silent
			// no-op rather than an error.
			slog.Warn("work save attempted for a non-existing user", "username", username)
			return nil, nil
		}
		return nil, err
	}

	work := &models.Work{
		UserID:      user.ID,
		Date:        *in.Date,
		Time:        *in.Time,
		Description: *in.Description,
		Minutes:     *in.Minutes,
	}
	if err := works.Insert(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

// DeleteWorks removes a batch of works by id inside one transaction. A
// missing id rolls the whole batch back.
func (s *WorkService) DeleteWorks(ctx context.Context, ids []int64) error {
	if ids == nil {
		return fmt.Errorf("%w: deleted work ids are mandatory", ErrValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		works := repo.NewWorkRepo(tx)
		for _, id := range ids {
			if err := works.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}
