package member

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"audimew-storefront/internal/format"
	"audimew-storefront/internal/model"
)

// ValidationError carries the message shown to the member.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

const (
	MsgIDNotChecked     = "아이디 중복 확인을 해주세요."
	MsgPasswordEmpty    = "비밀번호를 입력해주세요."
	MsgPasswordRule     = "비밀번호는 6글자 이상, 영어(대소문자 구분 없음), 숫자, 특수문자가 포함되어야 합니다."
	MsgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	MsgNameEmpty        = "이름을 입력해주세요."
	MsgAddressEmpty     = "주소를 입력해주세요."
	MsgEmailID          = "이메일을 제대로 입력해주세요."
	MsgEmailDomain      = "이메일 도메인을 제대로 입력해주세요."
	MsgPhoneIncomplete  = "휴대폰 번호가 제대로 입력되지 않았습니다."
	MsgAgreements       = "필수 약관에 동의해야 합니다."
	MsgIDEmpty          = "아이디를 입력해주세요."
)

// formattedPhoneLen is the length of 010-1234-5678.
const formattedPhoneLen = 13

// SignupForm is the registration form as submitted by the browser.
type SignupForm struct {
	UserID          string `json:"userId"`
	Password        string `json:"userPw"`
	ConfirmPassword string `json:"confirmPassword"`
	UserName        string `json:"userName"`
	EmailID         string `json:"userEmailId"`
	EmailDomain     string `json:"userEmailDomain"`
	Address         string `json:"userAddress"`
	PhoneNum        string `json:"userPhoneNum"`
	AgreeAge        bool   `json:"agreeAge"`
	AgreeTerms      bool   `json:"agreeTerms"`
	AgreePrivacy    bool   `json:"agreePrivacy"`
	AgreeCommercial bool   `json:"agreeCommercial"`
}

// ValidPassword reports whether pw has at least 6 characters including a
// latin letter, a digit and a symbol.
func ValidPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < 6 {
		return false
	}
	var letter, digit, symbol bool
	for _, r := range pw {
		switch {
		case r == '\n' || r == '\r':
			return false
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return letter && digit && symbol
}

// ComposeEmail joins the two halves of the e-mail input. It is empty until
// both halves are filled.
func ComposeEmail(id, domain string) string {
	if id == "" || domain == "" {
		return ""
	}
	return id + "@" + domain
}

// Validate returns the first failed check, in the order the form shows them.
// idChecked is true once the user ID passed the duplicate check.
func (f SignupForm) Validate(idChecked bool) error {
	switch {
	case !idChecked:
		return invalid(MsgIDNotChecked)
	case strings.TrimSpace(f.Password) == "":
		return invalid(MsgPasswordEmpty)
	case !ValidPassword(f.Password):
		return invalid(MsgPasswordRule)
	case f.Password != f.ConfirmPassword:
		return invalid(MsgPasswordMismatch)
	case strings.TrimSpace(f.UserName) == "":
		return invalid(MsgNameEmpty)
	case strings.TrimSpace(f.Address) == "":
		return invalid(MsgAddressEmpty)
	case strings.TrimSpace(f.EmailID) == "":
		return invalid(MsgEmailID)
	case strings.TrimSpace(f.EmailDomain) == "":
		return invalid(MsgEmailDomain)
	case len(f.phone()) < formattedPhoneLen:
		return invalid(MsgPhoneIncomplete)
	case !f.AgreeAge || !f.AgreeTerms || !f.AgreePrivacy:
		return invalid(MsgAgreements)
	}
	return nil
}

// Request builds the registration payload.
func (f SignupForm) Request() model.SignupRequest {
	emailID := strings.TrimSpace(f.EmailID)
	emailDomain := strings.TrimSpace(f.EmailDomain)
	return model.SignupRequest{
		UserID:          strings.TrimSpace(f.UserID),
		UserPw:          f.Password,
		UserName:        strings.TrimSpace(f.UserName),
		UserEmail:       ComposeEmail(emailID, emailDomain),
		UserEmailID:     emailID,
		UserEmailDomain: emailDomain,
		UserAddress:     strings.TrimSpace(f.Address),
		UserPhoneNum:    f.phone(),
	}
}

// PhoneMessage is the hint shown under the phone field, or "" when the
// number is empty or complete.
func (f SignupForm) PhoneMessage() string {
	if f.PhoneNum == "" {
		return ""
	}
	digits, _ := format.PhoneInput(f.PhoneNum)
	_, msg := format.ValidPhone(digits)
	return msg
}

func (f SignupForm) phone() string {
	if f.PhoneNum == "" {
		return ""
	}
	_, formatted := format.PhoneInput(f.PhoneNum)
	return formatted
}
