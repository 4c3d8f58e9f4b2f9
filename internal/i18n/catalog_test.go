package i18n

import "testing"

func TestT(t *testing.T) {
	tests := []struct {
		locale string
		key    Key
		want   string
	}{
		{Marathi, MobileInvalid, "वैध मोबाईल नंबर टाका"},
		{English, MobileInvalid, "Enter a valid mobile number"},
		{Marathi, FieldsRequired, "सर्व फील्ड भरणे आवश्यक आहे"},
		{Marathi, ServerError, "सर्व्हर त्रुटी. कृपया पुन्हा प्रयत्न करा."},
		{"fr", NameRequired, "नाव आवश्यक आहे"},
		{"", ReceiptTitle, "देणगी रसीद"},
	}
	for _, tc := range tests {
		if got := T(tc.locale, tc.key); got != tc.want {
			t.Fatalf("T(%q, %q) = %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}
}

func TestEveryKeyHasBothLanguages(t *testing.T) {
	for key, pair := range messages {
		if pair[0] == "" || pair[1] == "" {
			t.Fatalf("message %q is missing a translation: %#v", key, pair)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		prefs  string
		want   string
		wantOK bool
	}{
		{"mr-IN", Marathi, true},
		{"mr", Marathi, true},
		{"en-US,en;q=0.9", English, true},
		{"EN", English, true},
		{"", "", false},
		{";;;", "", false},
	}
	for _, tc := range tests {
		got, ok := Match(tc.prefs)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Match(%q) = (%q, %v), want (%q, %v)", tc.prefs, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNormalizeAndSupported(t *testing.T) {
	if got := Normalize("en-GB"); got != English {
		t.Fatalf("Normalize(en-GB) = %q, want en", got)
	}
	if got := Normalize(""); got != DefaultLocale {
		t.Fatalf("Normalize(\"\") = %q, want %q", got, DefaultLocale)
	}
	if !Supported("mr") || !Supported("en") || Supported("hi") {
		t.Fatalf("Supported() mismatch")
	}
}

func TestTranslator(t *testing.T) {
	tr := Translator(English)
	if got := tr(string(ReceiptBack)); got != "Go back" {
		t.Fatalf("Translator(en)(%q) = %q", ReceiptBack, got)
	}
}
