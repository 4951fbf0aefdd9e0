package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"minutes-tracker/internal/models"
)

func TestWorkRepo_CountByDateTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	from := models.NewWorkDate(2015, time.January, 1)
	to := models.NewWorkDate(2015, time.January, 2)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM works w\s+JOIN users u ON u\.id = w\.user_id\s+WHERE u\.username = \$1 AND w\.work_date >= \$2 AND w\.work_date <= \$3`).
		WithArgs("test123", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewWorkRepo(db)
	n, err := repo.CountByDateTime(context.Background(), "test123", from, &to, nil, nil)
	if err != nil {
		t.Fatalf("CountByDateTime: %v", err)
	}
	if n != 4 {
		t.Errorf("count: got %d, want 4", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_CountByDateTime_TimeBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	from := models.NewWorkDate(2015, time.January, 1)
	to := models.NewWorkDate(2015, time.January, 2)
	fromTime := models.NewDayTime(11, 0)
	toTime := models.NewDayTime(14, 0)

	mock.ExpectQuery(`WHERE u\.username = \$1 AND w\.work_date >= \$2 AND w\.work_date <= \$3 AND w\.work_time >= \$4 AND w\.work_time <= \$5`).
		WithArgs("test123", from, to, fromTime, toTime).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewWorkRepo(db)
	n, err := repo.CountByDateTime(context.Background(), "test123", from, &to, &fromTime, &toTime)
	if err != nil {
		t.Fatalf("CountByDateTime: %v", err)
	}
	if n != 2 {
		t.Errorf("count: got %d, want 2", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_FindByDateTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	from := models.NewWorkDate(2015, time.January, 1)
	to := models.NewWorkDate(2015, time.January, 2)

	rows := sqlmock.NewRows([]string{"id", "user_id", "work_date", "work_time", "description", "minutes"}).
		AddRow(3, 1, time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC), "08:00:00", "later day first", 30).
		AddRow(1, 1, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), "09:00:00", "breakfast", 15).
		AddRow(2, 1, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), "11:00:00", "lunch prep", 45)

	// Page 2 means offset 10.
	mock.ExpectQuery(`ORDER BY w\.work_date DESC, w\.work_time ASC\s+LIMIT \$4 OFFSET \$5`).
		WithArgs("test123", from, to, 10, 10).
		WillReturnRows(rows)

	repo := NewWorkRepo(db)
	works, err := repo.FindByDateTime(context.Background(), "test123", from, &to, nil, nil, 2)
	if err != nil {
		t.Fatalf("FindByDateTime: %v", err)
	}
	if len(works) != 3 {
		t.Fatalf("unexpected works: %+v", works)
	}
	if works[0].ID != 3 || works[0].Date.String() != "2015/01/02" {
		t.Errorf("unexpected first work: %+v", works[0])
	}
	if works[1].Time.String() != "09:00" || works[2].Time.String() != "11:00" {
		t.Errorf("unexpected time order: %+v", works)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, work_date, work_time, description, minutes\s+FROM works\s+WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	repo := NewWorkRepo(db)
	_, err = repo.Get(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	w := &models.Work{
		UserID:      1,
		Date:        models.NewWorkDate(2015, time.January, 1),
		Time:        models.NewDayTime(11, 0),
		Description: "test",
		Minutes:     100,
	}

	mock.ExpectQuery(`INSERT INTO works \(user_id, work_date, work_time, description, minutes\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5\)\s+RETURNING id`).
		WithArgs(int64(1), w.Date, w.Time, "test", int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	repo := NewWorkRepo(db)
	if err := repo.Insert(context.Background(), w); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if w.ID != 42 {
		t.Errorf("id not set: %+v", w)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	w := &models.Work{
		ID:          7,
		Date:        models.NewWorkDate(2015, time.January, 1),
		Time:        models.NewDayTime(11, 0),
		Description: "gone",
		Minutes:     5,
	}

	mock.ExpectExec(`UPDATE works\s+SET work_date = \$1, work_time = \$2, description = \$3, minutes = \$4\s+WHERE id = \$5`).
		WithArgs(w.Date, w.Time, "gone", int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewWorkRepo(db)
	err = repo.Update(context.Background(), w)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM works WHERE id = \$1`).
		WithArgs(int64(14)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewWorkRepo(db)
	if err := repo.Delete(context.Background(), 14); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM works WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewWorkRepo(db)
	err = repo.Delete(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
