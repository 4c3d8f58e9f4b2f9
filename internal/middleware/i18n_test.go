package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		setup    func(r *http.Request)
		fallback string
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "EN")
			},
			want: "en",
		},
		{
			name: "english browser stays marathi",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "mr",
		},
		{
			name: "country hint does not switch language",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "US")
			},
			want: "mr",
		},
		{
			name:   "lang query",
			target: "/?lang=en",
			want:   "en",
		},
		{
			name: "lang cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "en"})
			},
			want: "en",
		},
		{
			name:   "x-locale beats query",
			target: "/?lang=en",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "mr")
			},
			want: "mr",
		},
		{
			name:   "unknown query ignored",
			target: "/?lang=fr",
			want:   "mr",
		},
		{
			name:     "configured fallback",
			fallback: "en",
			want:     "en",
		},
		{
			name:     "unsupported fallback ignored",
			fallback: "fr",
			want:     "mr",
		},
		{
			name: "default to mr",
			want: "mr",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			if target == "" {
				target = "/"
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := detectLocale(req, tc.fallback)
			if got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver CountryLookup
		want     string
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "in")
				r.Header.Set("CF-IPCountry", "us")
			},
			want: "IN",
		},
		{
			name: "locale region fallback",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "en-AU")
			},
			want: "AU",
		},
		{
			name: "accept-language region",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-GB,en;q=0.9")
			},
			want: "GB",
		},
		{
			name: "marathi without region implies india",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "mr;q=0.8")
			},
			want: "IN",
		},
		{
			name: "resolver fallback",
			resolver: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return "in", nil
			},
			want: "IN",
		},
		{
			name: "resolver error returns empty",
			resolver: func(ip string) (string, error) {
				return "", assertError("boom")
			},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveCountry(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NStoresLocaleAndCountry(t *testing.T) {
	var gotLocale, gotCountry string
	h := I18N("mr", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-IN")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if gotLocale != "mr" {
		t.Fatalf("locale = %q, want mr", gotLocale)
	}
	if gotCountry != "IN" {
		t.Fatalf("country = %q, want IN", gotCountry)
	}
	if got := rr.Header().Get("Content-Language"); got != "mr" {
		t.Fatalf("Content-Language = %q, want mr", got)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected without ?lang=")
	}
}

func TestI18NRemembersLangChoice(t *testing.T) {
	var gotLocale string
	h := I18N("mr", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	if gotLocale != "en" {
		t.Fatalf("locale = %q, want en", gotLocale)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LocaleCookie || cookies[0].Value != "en" {
		t.Fatalf("cookies = %v, want lang=en", cookies)
	}

	next := httptest.NewRequest(http.MethodPost, "/", nil)
	next.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), next)
	if gotLocale != "en" {
		t.Fatalf("locale from cookie = %q, want en", gotLocale)
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != "mr" {
		t.Fatalf("LocaleFromContext() default = %q, want %q", got, "mr")
	}
	ctx = ContextWithLocale(ctx, "en")
	if got := LocaleFromContext(ctx); got != "en" {
		t.Fatalf("LocaleFromContext() with value = %q, want %q", got, "en")
	}
	ctx = ContextWithLocale(context.Background(), "en-GB")
	if got := LocaleFromContext(ctx); got != "en" {
		t.Fatalf("LocaleFromContext() normalized = %q, want %q", got, "en")
	}
}
