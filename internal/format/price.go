package format

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// PriceDigits extracts the numeric value of a display price such as
// "₩129,000" or "129,000원".
func PriceDigits(s string) (int64, error) {
	digits := Digits(s)
	if digits == "" {
		return 0, fmt.Errorf("no digits in price %q", s)
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", s, err)
	}
	return v, nil
}

// Number formats n with thousands separators.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Won formats n as a won amount, e.g. ₩129,000.
func Won(n int64) string {
	return "₩" + Number(n)
}

// SignedPoints formats a point delta as +1,000P or -500P.
func SignedPoints(n int) string {
	if n > 0 {
		return "+" + Number(int64(n)) + "P"
	}
	return Number(int64(n)) + "P"
}
