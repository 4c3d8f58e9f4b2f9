package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ganpati/internal/domain"
	"ganpati/internal/donation"
	"ganpati/internal/infra"
)

// Donor processes a single donation request.
type Donor interface {
	Donate(ctx context.Context, req domain.DonationRequest) (*donation.Result, error)
}

type App struct {
	Logger    infra.Logger
	Donations Donor
}

func NewApp(logger infra.Logger, donations Donor) *App {
	return &App{Logger: logger, Donations: donations}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}
