// Package web serves the server-rendered donation form and receipt pages.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ganpati/internal/client"
	"ganpati/internal/domain"
	"ganpati/internal/i18n"
	"ganpati/internal/middleware"
	"ganpati/internal/receipt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Handler.
type Options struct {
	// Endpoint is the donation API the form posts to.
	Endpoint   string
	HTTPClient *http.Client
	// Location is the receipt time zone; nil means UTC.
	Location *time.Location
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Handler renders the form and receipt pages.
type Handler struct {
	opts      Options
	tmpl      *template.Template
	formatter *receipt.Formatter
}

type formView struct {
	Lang         string
	T            func(string) string
	Values       client.Values
	Errors       map[string]string
	QuickAmounts []int
}

type receiptView struct {
	Lang        string
	T           func(string) string
	Record      domain.DonationRecord
	Timestamp   string
	FileName    string
	DownloadURL template.URL
}

func NewHandler(opts Options) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if opts.Endpoint == "" {
		return nil, errors.New("web: donation endpoint is required")
	}
	return &Handler{
		opts:      opts,
		tmpl:      tmpl,
		formatter: receipt.NewFormatter(opts.Location),
	}, nil
}

// Form handles GET /. A positive ?amount= pre-fills the amount input.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	var values client.Values
	if raw := strings.TrimSpace(r.URL.Query().Get("amount")); raw != "" {
		if n, err := domain.ParseAmount(raw); err == nil {
			values.Amount = strconv.FormatInt(n, 10)
		}
	}
	h.render(w, http.StatusOK, "form.html", h.formView(locale, values, nil))
}

// Submit handles POST / by running the submission client against the
// donation endpoint. A quick-amount button only fills in the amount and
// re-renders the form with the other inputs kept.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.LocaleFromContext(ctx)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if quick := r.PostFormValue("quick_amount"); quick != "" {
		values := client.Values{
			Name:   r.PostFormValue("name"),
			Mobile: r.PostFormValue("mobile"),
			Amount: r.PostFormValue("amount"),
		}
		if n, err := domain.ParseAmount(quick); err == nil {
			values.Amount = strconv.FormatInt(n, 10)
		}
		h.render(w, http.StatusOK, "form.html", h.formView(locale, values, nil))
		return
	}

	form := client.NewForm(client.Options{
		Endpoint:   h.opts.Endpoint,
		HTTPClient: h.opts.HTTPClient,
		Locale:     locale,
		Now:        h.opts.Now,
		Header: http.Header{
			"X-Forwarded-For": {middleware.ClientIP(r)},
			"X-Request-Id":    {middleware.RequestIDFromContext(ctx)},
		},
	})
	form.Set(client.FieldName, r.PostFormValue("name"))
	form.Set(client.FieldMobile, r.PostFormValue("mobile"))
	form.Set(client.FieldAmount, r.PostFormValue("amount"))

	rec, err := form.Submit(ctx)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var se *client.SubmitError
		if errors.As(err, &se) {
			status = http.StatusBadGateway
			if se.Kind == client.KindRejected {
				status = http.StatusBadRequest
			}
			h.opts.Logger.Warn().
				Err(err).
				Str("request_id", middleware.RequestIDFromContext(ctx)).
				Str("kind", string(se.Kind)).
				Msg("donation submit failed")
		}
		h.render(w, status, "form.html", h.formView(locale, form.Values(), form.Errors()))
		return
	}

	h.render(w, http.StatusOK, "receipt.html", receiptView{
		Lang:        locale,
		T:           i18n.Translator(locale),
		Record:      *rec,
		Timestamp:   h.formatter.Timestamp(rec.Timestamp, locale),
		FileName:    receipt.FileName(*rec),
		DownloadURL: template.URL(h.formatter.DataURI(*rec, locale)),
	})
}

func (h *Handler) formView(locale string, values client.Values, errs map[client.Field]string) formView {
	view := formView{
		Lang:         locale,
		T:            i18n.Translator(locale),
		Values:       values,
		Errors:       make(map[string]string, len(errs)),
		QuickAmounts: client.QuickAmounts,
	}
	for field, msg := range errs {
		view.Errors[string(field)] = msg
	}
	return view
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.opts.Logger.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
