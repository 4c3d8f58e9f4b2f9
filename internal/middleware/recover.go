package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"ganpati/internal/i18n"
)

// Recover turns a handler panic into a localized 500 JSON response.
func Recover(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l.Error().
					Str("request_id", RequestIDFromContext(r.Context())).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panic")
				writeError(w, http.StatusInternalServerError, i18n.T(LocaleFromContext(r.Context()), i18n.ServerError))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
