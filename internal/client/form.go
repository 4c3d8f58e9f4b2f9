// Package client is the submission side of the donation flow. A Form holds
// what the donor typed, validates it locally and posts it to the donation
// endpoint, producing a DonationRecord on success.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ganpati/internal/domain"
	"ganpati/internal/i18n"
)

// Field names a form input, plus the pseudo field for submission errors.
type Field string

const (
	FieldName   Field = "name"
	FieldMobile Field = "mobile"
	FieldAmount Field = "amount"
	FieldSubmit Field = "submit"
)

// QuickAmounts are the preset donation buttons shown under the amount input.
var QuickAmounts = []int{51, 101, 251, 501}

var (
	// ErrInvalidForm means local validation failed and nothing was sent.
	ErrInvalidForm = errors.New("client: form has invalid fields")
	// ErrSubmitInProgress means another Submit on the same form is running.
	ErrSubmitInProgress = errors.New("client: submission already in progress")
)

// Values are the raw form inputs.
type Values struct {
	Name   string
	Mobile string
	Amount string
}

// Options configures a Form.
type Options struct {
	Endpoint   string
	HTTPClient *http.Client
	Locale     string
	Now        func() time.Time
	OnSuccess  func(domain.DonationRecord)
	// Header is added to every request sent to the endpoint.
	Header http.Header
}

// Form is one instance of the donation form. It is safe to share between
// goroutines, but only one submission runs at a time.
type Form struct {
	endpoint   string
	httpClient *http.Client
	locale     string
	now        func() time.Time
	onSuccess  func(domain.DonationRecord)
	header     http.Header

	mu         sync.Mutex
	values     Values
	errors     map[Field]string
	submitting atomic.Bool
}

// NewForm builds an empty form.
func NewForm(opts Options) *Form {
	f := &Form{
		endpoint:   opts.Endpoint,
		httpClient: opts.HTTPClient,
		locale:     opts.Locale,
		now:        opts.Now,
		onSuccess:  opts.OnSuccess,
		header:     opts.Header.Clone(),
		errors:     map[Field]string{},
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if !i18n.Supported(f.locale) {
		f.locale = i18n.DefaultLocale
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Set updates one input and clears any error shown for it.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldMobile:
		f.values.Mobile = value
	case FieldAmount:
		f.values.Amount = value
	default:
		return
	}
	delete(f.errors, field)
}

// Values returns a copy of the current inputs.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current field and submission errors.
func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[Field]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether a request is outstanding.
func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

// Reset empties every input and error.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = Values{}
	f.errors = map[Field]string{}
}

// Validate replaces the field errors with the result of local validation and
// reports whether the form may be submitted.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := validateValues(f.values)
	f.errors = make(map[Field]string, len(errs))
	for field, key := range errs {
		f.errors[field] = i18n.T(f.locale, key)
	}
	return len(errs) == 0
}

func validateValues(v Values) map[Field]i18n.Key {
	errs := map[Field]i18n.Key{}
	if strings.TrimSpace(v.Name) == "" {
		errs[FieldName] = i18n.NameRequired
	}
	switch mobile := strings.TrimSpace(v.Mobile); {
	case mobile == "":
		errs[FieldMobile] = i18n.MobileRequired
	case !domain.ValidMobile(v.Mobile):
		errs[FieldMobile] = i18n.MobileInvalid
	}
	switch amount := strings.TrimSpace(v.Amount); {
	case amount == "":
		errs[FieldAmount] = i18n.AmountRequired
	default:
		if _, err := domain.ParseAmount(amount); err != nil {
			errs[FieldAmount] = i18n.AmountInvalid
		}
	}
	return errs
}

// Submit validates the form and, when it passes, posts it to the endpoint.
// On success the record is handed to OnSuccess and the form is cleared. On
// failure the inputs are kept and a submission error is set.
func (f *Form) Submit(ctx context.Context) (*domain.DonationRecord, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer f.submitting.Store(false)

	if !f.Validate() {
		return nil, ErrInvalidForm
	}
	values := f.Values()
	amount, err := domain.ParseAmount(values.Amount)
	if err != nil {
		return nil, ErrInvalidForm
	}

	txID, err := f.post(ctx, values)
	if err != nil {
		f.setSubmitError(err)
		return nil, err
	}

	rec := domain.DonationRecord{
		Name:          values.Name,
		Mobile:        values.Mobile,
		Amount:        amount,
		TransactionID: txID,
		Timestamp:     f.now(),
	}
	if f.onSuccess != nil {
		f.onSuccess(rec)
	}
	f.Reset()
	return &rec, nil
}

func (f *Form) setSubmitError(err error) {
	key := i18n.ConnectionErr
	var se *SubmitError
	if errors.As(err, &se) {
		switch se.Kind {
		case KindRejected:
			key = i18n.SubmitFailed
		case KindServer:
			key = i18n.ServerError
		}
	}
	f.mu.Lock()
	f.errors[FieldSubmit] = i18n.T(f.locale, key)
	f.mu.Unlock()
}

type donateRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Amount string `json:"amount"`
}

type donateResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Error         string `json:"error"`
}

func (f *Form) post(ctx context.Context, v Values) (string, error) {
	body, err := json.Marshal(donateRequest{Name: v.Name, Mobile: v.Mobile, Amount: v.Amount})
	if err != nil {
		return "", &SubmitError{Kind: KindConnection, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &SubmitError{Kind: KindConnection, Err: err}
	}
	for k, vals := range f.header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Locale", f.locale)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &SubmitError{Kind: KindConnection, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &SubmitError{Kind: KindConnection, Status: resp.StatusCode, Err: err}
	}
	var out donateResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindRejected
		if resp.StatusCode >= http.StatusInternalServerError {
			kind = KindServer
		}
		return "", &SubmitError{Kind: kind, Status: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return "", &SubmitError{Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if out.TransactionID == "" {
		return "", &SubmitError{Kind: KindServer, Status: resp.StatusCode, Err: errors.New("response has no transaction id")}
	}
	return out.TransactionID, nil
}
