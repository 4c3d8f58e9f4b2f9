package httpapi

import (
	stdhttp "net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ganpati/internal/http/handlers"
	"ganpati/internal/infra"
	"ganpati/internal/middleware"
	"ganpati/internal/web"
)

// Options carries the router-level settings taken from config.
type Options struct {
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
	// TrustedProxies may set X-Forwarded-For; loopback always may.
	TrustedProxies []netip.Prefix
}

func NewRouter(app *handlers.App, ui *web.Handler, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.TrustedRealIP(opts.TrustedProxies),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Logger(app.Logger),
		middleware.Recover(app.Logger),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Locale", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Content-Language"},
			MaxAge:         300,
		}))
		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/donate", app.Donate)
	})

	if ui != nil {
		r.Get("/", ui.Form)
		r.With(chimw.NoCache).Post("/", ui.Submit)
	}

	return r
}

// OptionsFromConfig maps config onto router options.
func OptionsFromConfig(cfg *infra.Config, lookup middleware.CountryLookup) Options {
	return Options{
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		TrustedProxies:  cfg.TrustedProxies,
	}
}
