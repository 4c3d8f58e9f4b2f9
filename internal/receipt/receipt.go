// Package receipt renders a DonationRecord as the plain-text receipt the donor
// downloads.
package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"ganpati/internal/domain"
	"ganpati/internal/i18n"
)

var marathiMonths = [...]string{
	"जानेवारी", "फेब्रुवारी", "मार्च", "एप्रिल", "मे", "जून",
	"जुलै", "ऑगस्ट", "सप्टेंबर", "ऑक्टोबर", "नोव्हेंबर", "डिसेंबर",
}

// Writer persists receipt bytes under a key.
type Writer interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// Formatter renders receipts in a fixed time zone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter returns a Formatter for loc; nil means UTC.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// FileName is the download name for a record's receipt.
func FileName(rec domain.DonationRecord) string {
	return "ganpati-donation-" + rec.TransactionID + ".txt"
}

// Timestamp formats t as day, long month name, year and a 12 hour clock.
func (f *Formatter) Timestamp(t time.Time, locale string) string {
	t = t.In(f.loc)
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	pm := t.Hour() >= 12

	if locale == i18n.English {
		meridiem := "AM"
		if pm {
			meridiem = "PM"
		}
		return fmt.Sprintf("%d %s %d, %02d:%02d %s", t.Day(), t.Month(), t.Year(), hour, t.Minute(), meridiem)
	}
	meridiem := "म.पू."
	if pm {
		meridiem = "म.उ."
	}
	return fmt.Sprintf("%d %s %d, %02d:%02d %s", t.Day(), marathiMonths[t.Month()-1], t.Year(), hour, t.Minute(), meridiem)
}

// Text serializes rec into the plain-text receipt.
func (f *Formatter) Text(rec domain.DonationRecord, locale string) string {
	tr := func(k i18n.Key) string { return i18n.T(locale, k) }
	lines := []string{
		tr(i18n.ReceiptHeader),
		"",
		tr(i18n.ReceiptTitle),
		"",
		tr(i18n.ReceiptDonor) + " " + rec.Name,
		tr(i18n.ReceiptMobile) + " " + rec.Mobile,
		fmt.Sprintf("%s ₹%d", tr(i18n.ReceiptAmount), rec.Amount),
		tr(i18n.ReceiptTxnID) + " " + rec.TransactionID,
		tr(i18n.ReceiptDate) + " " + f.Timestamp(rec.Timestamp, locale),
		"",
		tr(i18n.ReceiptThanks),
		tr(i18n.ReceiptClosing),
	}
	return strings.Join(lines, "\n") + "\n"
}

// DataURI embeds the text receipt so a browser can download it without
// another request.
func (f *Formatter) DataURI(rec domain.DonationRecord, locale string) string {
	return "data:text/plain;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(f.Text(rec, locale)))
}

// Save writes the text receipt through w under FileName(rec).
func (f *Formatter) Save(ctx context.Context, w Writer, rec domain.DonationRecord, locale string) (string, error) {
	if rec.TransactionID == "" {
		return "", fmt.Errorf("receipt: transaction id is required")
	}
	key, err := w.Write(ctx, FileName(rec), []byte(f.Text(rec, locale)))
	if err != nil {
		return "", fmt.Errorf("receipt: save: %w", err)
	}
	return key, nil
}
