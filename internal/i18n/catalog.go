// Package i18n holds the user-facing strings in Marathi and English and the
// locale negotiation used by the HTTP layer.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	Marathi       = "mr"
	English       = "en"
	DefaultLocale = Marathi
)

// Key identifies a translatable message.
type Key string

const (
	PageTitle    Key = "page.title"
	FormTitle    Key = "form.title"
	FormSubtitle Key = "form.subtitle"
	FormFooter   Key = "form.footer"

	NameLabel         Key = "form.name.label"
	NamePlaceholder   Key = "form.name.placeholder"
	MobileLabel       Key = "form.mobile.label"
	MobilePlaceholder Key = "form.mobile.placeholder"
	AmountLabel       Key = "form.amount.label"
	AmountPlaceholder Key = "form.amount.placeholder"
	SubmitButton      Key = "form.submit"
	SubmittingButton  Key = "form.submitting"

	NameRequired   Key = "error.name.required"
	MobileRequired Key = "error.mobile.required"
	MobileInvalid  Key = "error.mobile.invalid"
	AmountRequired Key = "error.amount.required"
	AmountInvalid  Key = "error.amount.invalid"
	FieldsRequired Key = "error.fields.required"
	SubmitFailed   Key = "error.submit.failed"
	ConnectionErr  Key = "error.submit.connection"
	ServerError    Key = "error.server"
	RateLimited    Key = "error.rate_limited"

	DonationAccepted Key = "donation.accepted"

	ReceiptHeader   Key = "receipt.header"
	ReceiptTitle    Key = "receipt.title"
	ReceiptSuccess  Key = "receipt.success"
	ReceiptDetails  Key = "receipt.details"
	ReceiptDonor    Key = "receipt.donor"
	ReceiptMobile   Key = "receipt.mobile"
	ReceiptAmount   Key = "receipt.amount"
	ReceiptTxnID    Key = "receipt.txn"
	ReceiptDate     Key = "receipt.date"
	ReceiptDateTime Key = "receipt.datetime"
	ReceiptThanks   Key = "receipt.thanks"
	ReceiptGrateful Key = "receipt.grateful"
	ReceiptBlurb    Key = "receipt.blurb"
	ReceiptClosing  Key = "receipt.closing"
	ReceiptDownload Key = "receipt.download"
	ReceiptBack     Key = "receipt.back"
)

var messages = map[Key][2]string{
	PageTitle:    {"गणपती देणगी | Ganpati Donations", "Ganpati Donations"},
	FormTitle:    {"श्री गणेशाय नमः", "Shri Ganeshaya Namah"},
	FormSubtitle: {"गणपती बाप्पाच्या देणगीसाठी योगदान द्या", "Contribute to Ganpati Bappa's donation"},
	FormFooter:   {"गणपती बाप्पा मोरया! 🙏", "Ganpati Bappa Morya! 🙏"},

	NameLabel:         {"नाव *", "Name *"},
	NamePlaceholder:   {"तुमचे पूर्ण नाव टाका", "Enter your full name"},
	MobileLabel:       {"मोबाईल नंबर *", "Mobile number *"},
	MobilePlaceholder: {"10 अंकी मोबाईल नंबर", "10 digit mobile number"},
	AmountLabel:       {"देणगी रक्कम (₹) *", "Donation amount (₹) *"},
	AmountPlaceholder: {"रक्कम रुपयांत टाका", "Enter the amount in rupees"},
	SubmitButton:      {"देणगी द्या", "Donate"},
	SubmittingButton:  {"प्रक्रिया सुरू आहे...", "Processing..."},

	NameRequired:   {"नाव आवश्यक आहे", "Name is required"},
	MobileRequired: {"मोबाईल नंबर आवश्यक आहे", "Mobile number is required"},
	MobileInvalid:  {"वैध मोबाईल नंबर टाका", "Enter a valid mobile number"},
	AmountRequired: {"देणगी रक्कम आवश्यक आहे", "Donation amount is required"},
	AmountInvalid:  {"वैध रक्कम टाका", "Enter a valid amount"},
	FieldsRequired: {"सर्व फील्ड भरणे आवश्यक आहे", "All fields are required"},
	SubmitFailed:   {"देणगी प्रक्रिया अयशस्वी झाली. कृपया पुन्हा प्रयत्न करा.", "Donation processing failed. Please try again."},
	ConnectionErr:  {"कनेक्शन त्रुटी. कृपया पुन्हा प्रयत्न करा.", "Connection error. Please try again."},
	ServerError:    {"सर्व्हर त्रुटी. कृपया पुन्हा प्रयत्न करा.", "Server error. Please try again."},
	RateLimited:    {"खूप जास्त विनंत्या. कृपया थोड्या वेळाने पुन्हा प्रयत्न करा.", "Too many requests. Please try again shortly."},

	DonationAccepted: {"देणगी यशस्वीरित्या प्राप्त झाली", "Donation received successfully"},

	ReceiptHeader:   {"श्री गणेशाय नमः", "Shri Ganeshaya Namah"},
	ReceiptTitle:    {"देणगी रसीद", "Donation Receipt"},
	ReceiptSuccess:  {"देणगी यशस्वीरित्या प्राप्त झाली!", "Donation received successfully!"},
	ReceiptDetails:  {"देणगी तपशील:", "Donation details:"},
	ReceiptDonor:    {"दाता:", "Donor:"},
	ReceiptMobile:   {"मोबाईल:", "Mobile:"},
	ReceiptAmount:   {"रक्कम:", "Amount:"},
	ReceiptTxnID:    {"व्यवहार आयडी:", "Transaction ID:"},
	ReceiptDate:     {"दिनांक:", "Date:"},
	ReceiptDateTime: {"दिनांक आणि वेळ:", "Date and time:"},
	ReceiptThanks:   {"धन्यवाद!", "Thank you!"},
	ReceiptGrateful: {"तुमच्या देणगीबद्दल धन्यवाद!", "Thank you for your donation!"},
	ReceiptBlurb:    {"तुमच्या सहाय्याने गणपती उत्सव आणखी भव्य होईल", "Your support will make the Ganpati festival even grander"},
	ReceiptClosing:  {"गणपती बाप्पा मोरया!", "Ganpati Bappa Morya!"},
	ReceiptDownload: {"रसीद डाउनलोड करा", "Download receipt"},
	ReceiptBack:     {"परत जा", "Go back"},
}

var (
	supported = []language.Tag{language.Marathi, language.English}
	codes     = []string{Marathi, English}
	matcher   = language.NewMatcher(supported)
	cat       = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Marathi))
	for key, pair := range messages {
		for i, tag := range supported {
			if err := b.SetString(tag, string(key), pair[i]); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Supported reports whether locale is one of the served languages.
func Supported(locale string) bool {
	for _, code := range codes {
		if code == locale {
			return true
		}
	}
	return false
}

// Normalize maps an arbitrary locale string onto a served locale, falling
// back to DefaultLocale.
func Normalize(locale string) string {
	if v, ok := Match(locale); ok {
		return v
	}
	return DefaultLocale
}

// Match negotiates an Accept-Language style preference list against the
// served locales. ok is false when nothing matched with any confidence.
func Match(prefs string) (string, bool) {
	prefs = strings.TrimSpace(prefs)
	if prefs == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(prefs)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return codes[idx], true
}

// Tag returns the language tag for a served locale.
func Tag(locale string) language.Tag {
	for i, code := range codes {
		if code == locale {
			return supported[i]
		}
	}
	return supported[0]
}

// Printer returns a message printer for locale backed by the catalog.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Tag(locale), message.Catalog(cat))
}

// T translates key into locale.
func T(locale string, key Key) string {
	return Printer(locale).Sprintf(string(key))
}

// Translator returns a lookup bound to locale, convenient for templates.
func Translator(locale string) func(string) string {
	p := Printer(locale)
	return func(key string) string {
		return p.Sprintf(key)
	}
}
