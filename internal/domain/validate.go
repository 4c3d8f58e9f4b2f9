package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	amountPattern = regexp.MustCompile(`^([0-9]+)(\.0*)?$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mobile_in", func(fl validator.FieldLevel) bool {
		return ValidMobile(fl.Field().String())
	})
	_ = v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		_, err := ParseAmount(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidMobile reports whether s is a 10 digit Indian mobile number.
func ValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// ParseAmount parses a donation amount in whole rupees. Integral decimals
// such as "101.0" are accepted.
func ParseAmount(s string) (int64, error) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, ErrInvalidAmount
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// Validate checks the request and returns the parsed amount. Missing fields
// are reported before a bad mobile number, and a bad mobile number before a
// bad amount.
func (r DonationRequest) Validate() (int64, error) {
	err := validate.Struct(r)
	if err == nil {
		return ParseAmount(string(r.Amount))
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return 0, err
	}
	var mobileBad, amountBad bool
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return 0, ErrMissingField
		}
		switch fe.Field() {
		case "Mobile":
			mobileBad = true
		case "Amount":
			amountBad = true
		}
	}
	if mobileBad {
		return 0, ErrInvalidMobile
	}
	if amountBad {
		return 0, ErrInvalidAmount
	}
	return 0, err
}
