package middleware

import (
	"context"
	"net/http"
	"strings"

	"ganpati/internal/i18n"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// LocaleCookie remembers an explicit ?lang= choice.
const LocaleCookie = "lang"

// I18N picks the response locale and stores it, along with the best effort
// client country, in the request context. Only an explicit choice (X-Locale,
// ?lang= or the lang cookie) moves away from the default; browser
// Accept-Language preferences do not.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v, ok := i18n.Match(r.URL.Query().Get("lang")); ok {
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    v,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			locale := detectLocale(r, defaultLocale)
			ctx := ContextWithLocale(r.Context(), locale)
			if country := ResolveCountry(r, lookup); country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	if v, ok := i18n.Match(r.Header.Get("X-Locale")); ok {
		return v
	}
	if v, ok := i18n.Match(r.URL.Query().Get("lang")); ok {
		return v
	}
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if v, ok := i18n.Match(c.Value); ok {
			return v
		}
	}
	if i18n.Supported(fallback) {
		return fallback
	}
	return i18n.DefaultLocale
}

// ContextWithLocale stores locale in ctx; unsupported values are normalized.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	if !i18n.Supported(locale) {
		locale = i18n.Normalize(locale)
	}
	return context.WithValue(ctx, LocaleKey, locale)
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return i18n.DefaultLocale
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if locale, ok := i18n.Match(r.Header.Get("X-Locale")); ok && locale == i18n.Marathi {
		return "IN"
	}
	if locale, ok := i18n.Match(r.Header.Get("Accept-Language")); ok && locale == i18n.Marathi {
		return "IN"
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

func localeRegion(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if token == "" {
			continue
		}
		if idx := strings.IndexAny(token, "-_"); idx > 0 && idx < len(token)-1 {
			return strings.ToUpper(token[idx+1:])
		}
	}
	return ""
}
