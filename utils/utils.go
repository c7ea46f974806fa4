package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	localPhoneRe = regexp.MustCompile(`^0[17]\d{8}$`)
	intlPhoneRe  = regexp.MustCompile(`^254[17]\d{8}$`)
	certCodeRe   = regexp.MustCompile(`^AW-[0-9A-F]{10}$`)
)

// FormatPhoneNumber normalizes a Kenyan mobile number to 254[17]XXXXXXXX.
// Accepted inputs: 07XXXXXXXX, 01XXXXXXXX, 2547XXXXXXXX, 2541XXXXXXXX
// (optionally prefixed with +). Anything else is rejected.
func FormatPhoneNumber(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	switch {
	case localPhoneRe.MatchString(phone):
		return "254" + phone[1:], nil
	case intlPhoneRe.MatchString(phone):
		return phone, nil
	default:
		return "", fmt.Errorf("invalid Kenyan phone number: %s", raw)
	}
}

// GenerateVerificationCode returns a unique certificate code, e.g. AW-1A2B3C4D5E
func GenerateVerificationCode() string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "AW-" + hex[:10]
}

// IsValidVerificationCode reports whether code is a well-formed certificate code
func IsValidVerificationCode(code string) bool {
	return certCodeRe.MatchString(code)
}
