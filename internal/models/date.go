package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (e.g. "2015/01/02").
const DateLayout = "2006/01/02"

// TimeLayout is the wire format for times of day (e.g. "09:30").
const TimeLayout = "15:04"

// WorkDate is a calendar date with no time component. It marshals to JSON as
// a quoted "yyyy/MM/dd" string and maps to a Postgres DATE column.
type WorkDate struct {
	time.Time
}

// NewWorkDate builds a date from year, month and day.
func NewWorkDate(year int, month time.Month, day int) WorkDate {
	return WorkDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() WorkDate {
	now := time.Now()
	return NewWorkDate(now.Year(), now.Month(), now.Day())
}

// ParseWorkDate parses a "yyyy/MM/dd" string.
func ParseWorkDate(s string) (WorkDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return WorkDate{}, fmt.Errorf("invalid date %q, expected format %s", s, DateLayout)
	}
	return WorkDate{t}, nil
}

// AddDays returns the date shifted by n calendar days.
func (d WorkDate) AddDays(n int) WorkDate {
	return WorkDate{d.Time.AddDate(0, 0, n)}
}

func (d WorkDate) String() string {
	return d.Time.Format(DateLayout)
}

func (d WorkDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *WorkDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s, expected a quoted %s string", s, DateLayout)
	}
	parsed, err := ParseWorkDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so the date binds to a DATE parameter.
func (d WorkDate) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner. lib/pq returns DATE columns as time.Time.
func (d *WorkDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewWorkDate(v.Year(), v.Month(), v.Day())
		return nil
	case nil:
		*d = WorkDate{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WorkDate", src)
	}
}

// DayTime is a time of day with no date component. It marshals to JSON as a
// quoted "HH:mm" string and maps to a Postgres TIME column.
type DayTime struct {
	hour   int
	minute int
}

// NewDayTime builds a time of day from hour and minute.
func NewDayTime(hour, minute int) DayTime {
	return DayTime{hour: hour, minute: minute}
}

// ParseDayTime parses an "HH:mm" string.
func ParseDayTime(s string) (DayTime, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return DayTime{}, fmt.Errorf("invalid time %q, expected format %s", s, TimeLayout)
	}
	return DayTime{hour: t.Hour(), minute: t.Minute()}, nil
}

func (t DayTime) Hour() int   { return t.hour }
func (t DayTime) Minute() int { return t.minute }

// After reports whether t is later in the day than other.
func (t DayTime) After(other DayTime) bool {
	return t.hour*60+t.minute > other.hour*60+other.minute
}

func (t DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t DayTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *DayTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid time %s, expected a quoted %s string", s, TimeLayout)
	}
	parsed, err := ParseDayTime(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so the time binds to a TIME parameter.
func (t DayTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.hour, t.minute), nil
}

// Scan implements sql.Scanner. Depending on the driver a TIME column comes
// back as time.Time, string or []byte.
func (t *DayTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = DayTime{hour: v.Hour(), minute: v.Minute()}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case nil:
		*t = DayTime{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DayTime", src)
	}
}

func (t *DayTime) scanString(s string) error {
	// TIME columns render as "HH:MM:SS"; tolerate a missing seconds part.
	if len(s) > len("15:04") {
		s = s[:len("15:04")]
	}
	parsed, err := ParseDayTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
