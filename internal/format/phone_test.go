package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneInput(t *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		wantDigits    string
		wantFormatted string
	}{
		{name: "Empty input resets to prefix", raw: "", wantDigits: "010", wantFormatted: "010"},
		{name: "Prefix only", raw: "010", wantDigits: "010", wantFormatted: "010"},
		{name: "Middle block", raw: "0101234", wantDigits: "0101234", wantFormatted: "010-1234"},
		{name: "Full number", raw: "01012345678", wantDigits: "01012345678", wantFormatted: "010-1234-5678"},
		{name: "Dashes are ignored", raw: "010-1234-5678", wantDigits: "01012345678", wantFormatted: "010-1234-5678"},
		{name: "Extra digits are cut", raw: "0101234567890", wantDigits: "01012345678", wantFormatted: "010-1234-5678"},
		{name: "Other prefix is replaced", raw: "0111234", wantDigits: "010", wantFormatted: "010"},
		{name: "Letters only", raw: "abc", wantDigits: "010", wantFormatted: "010"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			digits, formatted := PhoneInput(tc.raw)
			assert.Equal(t, tc.wantDigits, digits)
			assert.Equal(t, tc.wantFormatted, formatted)
		})
	}
}

func TestValidPhone(t *testing.T) {
	ok, msg := ValidPhone("")
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidPhone("0101234")
	assert.False(t, ok)
	assert.Equal(t, InvalidPhoneMessage, msg)

	ok, msg = ValidPhone("01012345678")
	assert.True(t, ok)
	assert.Empty(t, msg)
}
