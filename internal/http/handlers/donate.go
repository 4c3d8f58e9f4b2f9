package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ganpati/internal/domain"
	"ganpati/internal/i18n"
	"ganpati/internal/middleware"
)

const (
	maxDonateBody   = 16 << 10
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type donateResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Timestamp     string `json:"timestamp"`
	Message       string `json:"message"`
}

// Donate handles POST /api/donate.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())

	var req domain.DonationRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDonateBody)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, i18n.T(locale, i18n.FieldsRequired))
		return
	}

	res, err := a.Donations.Donate(r.Context(), req)
	if domain.IsValidation(err) {
		a.Logger.Debug().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("donation rejected")
	}
	switch {
	case errors.Is(err, domain.ErrMissingField):
		a.error(w, http.StatusBadRequest, i18n.T(locale, i18n.FieldsRequired))
		return
	case errors.Is(err, domain.ErrInvalidMobile):
		a.error(w, http.StatusBadRequest, i18n.T(locale, i18n.MobileInvalid))
		return
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, i18n.T(locale, i18n.AmountInvalid))
		return
	case err != nil:
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("donation processing failed")
		a.error(w, http.StatusInternalServerError, i18n.T(locale, i18n.ServerError))
		return
	}

	a.json(w, http.StatusOK, donateResponse{
		Success:       true,
		TransactionID: res.TransactionID,
		Amount:        res.Amount,
		Timestamp:     res.Timestamp.UTC().Format(timestampLayout),
		Message:       i18n.T(locale, i18n.DonationAccepted),
	})
}
