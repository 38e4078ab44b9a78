package validation

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MinPasswordLength is the minimum password length in UTF-16 code units, the
// unit browsers report as a string's length.
const MinPasswordLength = 8

// Custom validator tags registered by New.
const (
	TagNonBlank   = "nonblank"
	TagPersonName = "personname"
	TagLooseEmail = "looseemail"
	TagPassword   = "passwordlen"
)

// spaceClass is the browser's whitespace set, which is wider than RE2's \s.
const spaceClass = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	nameRe  = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё'` + spaceClass + `-]+$`)
	emailRe = regexp.MustCompile(`^(([^<>()\[\]\\.,;:` + spaceClass + `@"]+(\.[^<>()\[\]\\.,;:` + spaceClass + `@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// trimSpace removes the whitespace spaceClass matches from both ends of s.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// Blank reports whether s is empty once surrounding whitespace is removed.
func Blank(s string) bool {
	return trimSpace(s) == ""
}

// ValidName reports whether the trimmed name is made only of Latin or Cyrillic
// letters, apostrophes, hyphens and spaces. An empty name is not valid.
func ValidName(name string) bool {
	return nameRe.MatchString(trimSpace(name))
}

// ValidEmail reports whether the lower-cased address looks like an email.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.ToLower(email))
}

// ValidPassword reports whether the password is at least MinPasswordLength
// UTF-16 code units long. Character classes are not checked.
func ValidPassword(password string) bool {
	return len(utf16.Encode([]rune(password))) >= MinPasswordLength
}

// PasswordsMatch reports whether the confirmation equals the password exactly.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// New returns a validator with the form tags registered.
func New() *validator.Validate {
	v := validator.New()
	// Registration can only fail on a duplicate tag, which would be a programming error.
	mustRegister(v, TagNonBlank, func(fl validator.FieldLevel) bool {
		return !Blank(fl.Field().String())
	})
	mustRegister(v, TagPersonName, func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
	mustRegister(v, TagLooseEmail, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	mustRegister(v, TagPassword, func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// EchoValidator adapts a validator to echo's Validator interface.
type EchoValidator struct {
	validator *validator.Validate
}

// NewEchoValidator creates an EchoValidator backed by New.
func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validator: New()}
}

// Validate implements echo.Validator.
func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.validator.Struct(i)
}

var _ echo.Validator = (*EchoValidator)(nil)
