package models

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// MaxMinutesPerDay is the user's daily minute cap; nil means no cap.
	MaxMinutesPerDay *int64 `json:"maxMinutesPerDay"`
}

// CapUsage is one row of the daily cap digest: a user whose logged minutes
// for a given day exceed their cap.
type CapUsage struct {
	Username string
	Minutes  int64
	Cap      int64
}
