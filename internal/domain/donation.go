package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DonationRecord is one completed mock donation. It lives only in UI state
// and is never persisted.
type DonationRecord struct {
	Name          string    `json:"name"`
	Mobile        string    `json:"mobile"`
	Amount        int64     `json:"amount"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// DonationRequest is the payload accepted by the donation endpoint.
type DonationRequest struct {
	Name   string     `json:"name" validate:"required"`
	Mobile string     `json:"mobile" validate:"required,mobile_in"`
	Amount FlexAmount `json:"amount" validate:"required,positive_amount"`
}

// Normalize trims surrounding whitespace from every field.
func (r *DonationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.Amount = FlexAmount(strings.TrimSpace(string(r.Amount)))
}

// FlexAmount accepts either a JSON string or a JSON number and keeps its
// textual form for validation.
type FlexAmount string

func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = FlexAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = FlexAmount(n.String())
	return nil
}
