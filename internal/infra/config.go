package infra

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"ganpati/internal/donation"
	"ganpati/internal/i18n"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DefaultLocale      string
	DonationDelay      time.Duration
	DonateEndpointURL  string
	SubmitTimeout      time.Duration
	ReceiptTimezone    string
	ReceiptLocation    *time.Location
	GeoIPDBPath        string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	TrustedProxies     []netip.Prefix
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		DefaultLocale:      strings.ToLower(getEnv("DEFAULT_LOCALE", i18n.DefaultLocale)),
		DonationDelay:      time.Millisecond * time.Duration(getEnvInt("DONATION_DELAY_MS", int(donation.DefaultDelay/time.Millisecond))),
		DonateEndpointURL:  getEnv("DONATE_ENDPOINT_URL", "http://127.0.0.1:"+port+"/api/donate"),
		SubmitTimeout:      time.Second * time.Duration(getEnvInt("SUBMIT_TIMEOUT_SECONDS", 30)),
		ReceiptTimezone:    getEnv("RECEIPT_TIMEZONE", "Asia/Kolkata"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if !i18n.Supported(cfg.DefaultLocale) {
		return nil, fmt.Errorf("DEFAULT_LOCALE %q is not supported", cfg.DefaultLocale)
	}
	if cfg.DonationDelay < 0 {
		return nil, fmt.Errorf("DONATION_DELAY_MS must not be negative")
	}
	if cfg.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if cfg.SubmitTimeout <= 0 {
		return nil, fmt.Errorf("SUBMIT_TIMEOUT_SECONDS must be positive")
	}
	loc, err := time.LoadLocation(cfg.ReceiptTimezone)
	if err != nil {
		return nil, fmt.Errorf("RECEIPT_TIMEZONE: %w", err)
	}
	cfg.ReceiptLocation = loc

	proxies, err := parsePrefixes(splitList(os.Getenv("TRUSTED_PROXIES")))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePrefixes accepts CIDR prefixes or bare addresses.
func parsePrefixes(items []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(items))
	for _, item := range items {
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
