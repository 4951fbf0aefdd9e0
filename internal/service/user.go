package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"minutes-tracker/internal/models"
	"minutes-tracker/internal/repo"
)

// UserInfo is what GET /user returns: the user's cap and today's total.
type UserInfo struct {
	Username         string `json:"username"`
	MaxMinutesPerDay *int64 `json:"maxMinutesPerDay"`
	TodaysMinutes    int64  `json:"todaysMinutes"`
}

// UserService holds user lifecycle and account operations.
type UserService struct {
	users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, email, plainPassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be blank", ErrValidation)
	}
	if plainPassword == "" {
		return nil, fmt.Errorf("%w: password is mandatory", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username/password pair for the login endpoint.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Info returns the user's daily cap together with the minutes logged today.
func (s *UserService) Info(ctx context.Context, username string) (*UserInfo, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	todays, err := s.users.MinutesForDate(ctx, username, models.Today())
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		Username:         user.Username,
		MaxMinutesPerDay: user.MaxMinutesPerDay,
		TodaysMinutes:    todays,
	}, nil
}

// UpdateMaxMinutes changes the user's daily minute cap.
func (s *UserService) UpdateMaxMinutes(ctx context.Context, username string, newMax *int64) error {
	if newMax != nil && *newMax < 0 {
		return fmt.Errorf("%w: max minutes per day cannot be negative", ErrValidation)
	}
	return s.users.UpdateMaxMinutes(ctx, username, newMax)
}
