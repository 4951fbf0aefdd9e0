package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"minutes-tracker/internal/metrics"
	"minutes-tracker/internal/middleware"
	"minutes-tracker/internal/models"
	"minutes-tracker/internal/service"
)

// dateTimeLayout is the query format of the fromTime/toTime bounds: the
// frontend sends a full date+time and only the time-of-day part matters.
const dateTimeLayout = "2006/01/02 15:04"

// defaultSearchWindowDays is how far back the search defaults when no dates
// are supplied.
const defaultSearchWindowDays = 3

// ==========================
// WorkHandler
// ==========================
type WorkHandler struct {
	Works *service.WorkService
}

type worksResponse struct {
	CurrentPage int64         `json:"currentPage"`
	TotalPages  int64         `json:"totalPages"`
	Works       []models.Work `json:"works"`
}

// ==========================
// Search Works (date/time bounds + 1-based page number)
// ==========================
func (h *WorkHandler) SearchWorks(w http.ResponseWriter, r *http.Request) {
	username := middleware.PrincipalFrom(r.Context())
	q := r.URL.Query()

	pageNumber, err := strconv.Atoi(q.Get("pageNumber"))
	if err != nil {
		JSONError(w, "pageNumber is required and must be an integer", http.StatusBadRequest)
		return
	}

	fromDate, ok := parseDateParam(w, q.Get("fromDate"))
	if !ok {
		return
	}
	toDate, ok := parseDateParam(w, q.Get("toDate"))
	if !ok {
		return
	}
	fromTime, ok := parseTimeParam(w, q.Get("fromTime"))
	if !ok {
		return
	}
	toTime, ok := parseTimeParam(w, q.Get("toTime"))
	if !ok {
		return
	}

	// With no dates at all, default to the last few days.
	if fromDate == nil && toDate == nil {
		from := models.Today().AddDays(-defaultSearchWindowDays)
		to := models.Today()
		fromDate, toDate = &from, &to
	}

	result, err := h.Works.Search(r.Context(), username, fromDate, toDate, fromTime, toTime, pageNumber)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	works := result.Works
	if works == nil {
		works = []models.Work{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(worksResponse{
		CurrentPage: int64(pageNumber),
		TotalPages:  service.TotalPages(result.Total),
		Works:       works,
	})
}

// ==========================
// Save Works (batch upsert, new and existing entries mixed)
// ==========================
func (h *WorkHandler) SaveWorks(w http.ResponseWriter, r *http.Request) {
	username := middleware.PrincipalFrom(r.Context())

	var items []service.WorkInput
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	saved, err := h.Works.SaveWorks(r.Context(), username, items)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	updated := 0
	for _, in := range items {
		if in.ID != nil {
			updated++
		}
	}
	metrics.AddWorksSaved("updated", updated)
	metrics.AddWorksSaved("created", len(saved)-updated)

	if saved == nil {
		saved = []models.Work{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

// ==========================
// Delete Works (batch by id)
// ==========================
func (h *WorkHandler) DeleteWorks(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Works.DeleteWorks(r.Context(), ids); err != nil {
		ServiceError(w, r, err)
		return
	}

	metrics.AddWorksDeleted(len(ids))
	w.WriteHeader(http.StatusOK)
}

// parseDateParam parses an optional "yyyy/MM/dd" query value. On a malformed
// value it writes a 400 and returns ok=false.
func parseDateParam(w http.ResponseWriter, value string) (*models.WorkDate, bool) {
	if value == "" {
		return nil, true
	}
	d, err := models.ParseWorkDate(value)
	if err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &d, true
}

// parseTimeParam parses an optional "yyyy/MM/dd HH:mm" query value, keeping
// only the time-of-day part.
func parseTimeParam(w http.ResponseWriter, value string) (*models.DayTime, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateTimeLayout, value)
	if err != nil {
		JSONError(w, "invalid time \""+value+"\", expected format "+dateTimeLayout, http.StatusBadRequest)
		return nil, false
	}
	dt := models.NewDayTime(t.Hour(), t.Minute())
	return &dt, true
}
