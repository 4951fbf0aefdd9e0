package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"minutes-tracker/internal/middleware"
	"minutes-tracker/internal/service"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users *service.UserService
}

// ==========================
// Get User Info (cap + today's minutes for the authenticated user)
// ==========================
func (h *UserHandler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	username := middleware.PrincipalFrom(r.Context())

	info, err := h.Users.Info(r.Context(), username)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// ==========================
// Update Max Minutes Per Day (body is a raw integer, null clears the cap)
// ==========================
func (h *UserHandler) UpdateMaxMinutes(w http.ResponseWriter, r *http.Request) {
	username := middleware.PrincipalFrom(r.Context())

	var newMax *int64
	if err := json.NewDecoder(r.Body).Decode(&newMax); err != nil {
		JSONError(w, "invalid JSON, expected an integer", http.StatusBadRequest)
		return
	}

	if err := h.Users.UpdateMaxMinutes(r.Context(), username, newMax); err != nil {
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ==========================
// Create User (open registration)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username          string `json:"username" validate:"required,min=2,max=64"`
		Email             string `json:"email" validate:"omitempty,email"`
		PlainTextPassword string `json:"plainTextPassword" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Users.Register(r.Context(), input.Username, input.Email, input.PlainTextPassword); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			JSONError(w, "user already exists", http.StatusBadRequest)
			return
		}
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
