// Package phone normalizes and validates recipient numbers before they are
// handed to an SMS gateway.
package phone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrEmptyNumber is returned for blank input.
	ErrEmptyNumber = errors.New("phone number is required")
	// ErrWrongCountry is returned when the number belongs to another country.
	ErrWrongCountry = errors.New("phone number is not brazilian")
	// ErrNotMobile is returned when the number cannot receive SMS.
	ErrNotMobile = errors.New("phone number is not a mobile number")
)

// Validator checks a number and returns the form the gateway expects.
type Validator interface {
	Normalize(number string) (string, error)
}

// BrazilCountryCode is the calling code the SmsDev gateway delivers to.
const BrazilCountryCode = 55

// BrazilMobile accepts Brazilian mobile numbers only. Numbers without a
// country code are treated as domestic. The result is digits only, country
// code first (e.g. 5511988887777).
type BrazilMobile struct{}

// Normalize implements Validator.
func (BrazilMobile) Normalize(number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", ErrEmptyNumber
	}

	num, err := phonenumbers.Parse(number, "BR")
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", number, err)
	}

	if int(num.GetCountryCode()) != BrazilCountryCode {
		return "", ErrWrongCountry
	}

	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		return "", ErrNotMobile
	}

	return strconv.Itoa(int(num.GetCountryCode())) + phonenumbers.GetNationalSignificantNumber(num), nil
}

// Passthrough performs no validation. It is what the gateway client falls
// back to when local checks are switched off.
type Passthrough struct{}

// Normalize implements Validator.
func (Passthrough) Normalize(number string) (string, error) {
	return number, nil
}

var (
	_ Validator = BrazilMobile{}
	_ Validator = Passthrough{}
)
