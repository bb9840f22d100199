package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sk-ims/src/middleware"
	"sk-ims/src/models"

	"github.com/go-chi/chi/v5"
)

// currentUser returns the identity the auth middleware attached; handlers
// only run behind it, so a missing identity yields the zero user.
func currentUser(r *http.Request) models.AuthUser {
	user, _ := middleware.CurrentUser(r)
	return user
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func idParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// parseDate turns an optional form date ("2006-01-02") into a nullable time.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ledgerErrorStatus maps the db layer's sentinel errors onto HTTP statuses.
// State conflicts (not pending, insufficient balance, duplicate allocation)
// are 409s: the request was well-formed but the ledger refused it.
func ledgerErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotPending),
		errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrDuplicateAllocation),
		errors.Is(err, models.ErrNotApproved):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
