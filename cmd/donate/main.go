package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"ganpati/internal/client"
	"ganpati/internal/i18n"
	"ganpati/internal/infra"
	"ganpati/internal/receipt"
	"ganpati/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	var (
		nameFlag     string
		mobileFlag   string
		amountFlag   string
		endpointFlag string
		outFlag      string
		localeFlag   string
	)
	flag.StringVar(&nameFlag, "name", "", "donor name")
	flag.StringVar(&mobileFlag, "mobile", "", "10 digit mobile number")
	flag.StringVar(&amountFlag, "amount", "", "donation amount in rupees")
	flag.StringVar(&endpointFlag, "endpoint", cfg.DonateEndpointURL, "donation endpoint URL")
	flag.StringVar(&outFlag, "out", ".", "directory the receipt is written to")
	flag.StringVar(&localeFlag, "locale", cfg.DefaultLocale, "receipt language (mr, en)")
	flag.Parse()

	locale := strings.ToLower(strings.TrimSpace(localeFlag))
	if !i18n.Supported(locale) {
		exitWithError(fmt.Errorf("unsupported locale %q", localeFlag))
	}

	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(outFlag)
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	form := client.NewForm(client.Options{
		Endpoint:   endpointFlag,
		HTTPClient: &http.Client{Timeout: cfg.SubmitTimeout},
		Locale:     locale,
	})
	form.Set(client.FieldName, nameFlag)
	form.Set(client.FieldMobile, mobileFlag)
	form.Set(client.FieldAmount, amountFlag)

	rec, err := form.Submit(ctx)
	if err != nil {
		errs := form.Errors()
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, string(field))
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, errs[client.Field(field)])
		}
		var se *client.SubmitError
		if errors.As(err, &se) {
			logger.Error().Err(err).Str("kind", string(se.Kind)).Int("status", se.Status).Msg("donation failed")
		}
		os.Exit(1)
	}

	key, err := receipt.NewFormatter(cfg.ReceiptLocation).Save(ctx, store, *rec, locale)
	if err != nil {
		exitWithError(err)
	}
	path, err := store.Path(key)
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("transaction %s, receipt saved to %s\n", rec.TransactionID, path)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
