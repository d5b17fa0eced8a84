package format

import (
	"regexp"
	"strings"
)

const mobilePrefix = "010"

// InvalidPhoneMessage is shown when a mobile number does not have 11 digits.
const InvalidPhoneMessage = "유효하지 않은 휴대폰 번호입니다."

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// PhoneInput normalizes raw keyboard input for the mobile number field. It
// keeps at most 11 digits and forces the 010 prefix. The returned digits are
// what validation runs on; the formatted string is what the field shows.
func PhoneInput(raw string) (digits, formatted string) {
	if raw == "" {
		return mobilePrefix, mobilePrefix
	}

	digits = Digits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	if !strings.HasPrefix(digits, mobilePrefix) {
		digits = mobilePrefix
	}
	return digits, Phone(digits)
}

// Phone renders a digit string as 010, 010-1234 or 010-1234-5678.
func Phone(value string) string {
	if value == "" {
		return ""
	}

	n := Digits(value)
	switch {
	case len(n) <= 3:
		return n
	case len(n) <= 7:
		return n[:3] + "-" + n[3:]
	default:
		end := len(n)
		if end > 11 {
			end = 11
		}
		return n[:3] + "-" + n[3:7] + "-" + n[7:end]
	}
}

// ValidPhone reports whether digits form a complete mobile number. An empty
// value is valid; the message is empty whenever ok is true.
func ValidPhone(digits string) (ok bool, message string) {
	if digits == "" {
		return true, ""
	}
	if len(digits) != 11 {
		return false, InvalidPhoneMessage
	}
	return true, ""
}
