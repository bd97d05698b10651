package utils

import (
	"regexp"
	"strings"
)

var validPhonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// NormalizePhone canonicalizes a raw phone number: strip every non-digit
// character, then keep the final 10 digits. This is the single normalization
// rule for the whole service; every boundary (OTP send, OTP verify, client
// save, payment correlation) must go through it so that "+91 98765-43210"
// and "9876543210" resolve to the same key.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// ValidatePhone reports whether an already-normalized phone number is a
// valid 10-digit local mobile number (first digit 6-9).
func ValidatePhone(phone string) bool {
	return validPhonePattern.MatchString(phone)
}
