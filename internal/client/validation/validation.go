// Package validation runs form checks before any network call is made.
//
// A check returns nil to let the pipeline continue, or an *Error carrying the
// message shown to the user. Validate stops at the first failing check.
package validation

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Form maps a field name to the submitted value.
type Form map[string]string

// Error is a user-facing form defect.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(msg string) *Error { return &Error{Message: msg} }

// Messages shown to the user.
const (
	MsgFillCredentials  = "Please insert email and password"
	MsgInvalidEmail     = "Invalid Email"
	MsgPasswordMismatch = "Passwords must match"
	MsgInvalidPassword  = "Invalid Password"
)

// Check inspects a submission; nil means continue.
type Check func(form Form) error

// emailPattern accepts local@domain.tld: word characters, dots and hyphens
// in the local part, dot-separated domain labels, a 2-4 character last label.
var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// Validate applies checks in order and returns the first failure.
func Validate(form Form, checks ...Check) error {
	for _, check := range checks {
		if err := check(form); err != nil {
			return err
		}
	}
	return nil
}

// CheckEmail verifies the shape of the named field.
func CheckEmail(field string) Check {
	return func(form Form) error {
		if !emailPattern.MatchString(form[field]) {
			return newError(MsgInvalidEmail)
		}
		return nil
	}
}

// CheckPassword is the permissive password check: it always continues.
func CheckPassword(string) Check {
	return func(Form) error { return nil }
}

// CheckStrongPassword requires the password to equal its confirmation and
// to contain an upper-case letter, a lower-case letter and a digit, with at
// least six characters and no whitespace.
func CheckStrongPassword(field, confirmField string) Check {
	return func(form Form) error {
		pw := form[field]
		if pw != form[confirmField] {
			return newError(MsgPasswordMismatch)
		}
		if !strongPassword(pw) {
			return newError(MsgInvalidPassword)
		}
		return nil
	}
}

func strongPassword(pw string) bool {
	if len([]rune(pw)) < 6 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Field names used by the login and registration forms.
const (
	LoginEmail       = "Email"
	LoginPassword    = "Password"
	RegisterEmail    = "email"
	RegisterPassword = "password"
	RegisterConfirm  = "confirmpassword"
	RegisterPlanID   = "PlanID"
)

// LoginChain validates the login form.
func LoginChain() []Check {
	return []Check{CheckEmail(LoginEmail)}
}

// RegisterChain validates the registration form. With strict unset the
// password check is permissive.
func RegisterChain(strict bool) []Check {
	pw := CheckPassword(RegisterPassword)
	if strict {
		pw = CheckStrongPassword(RegisterPassword, RegisterConfirm)
	}
	return []Check{CheckEmail(RegisterEmail), pw}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// RequireFields is the precondition run before the pipeline: every named
// field must be present and non-empty.
func RequireFields(form Form, fields ...string) error {
	for _, f := range fields {
		if err := validate.Var(form[f], "required"); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				return newError(MsgFillCredentials)
			}
			return err
		}
	}
	return nil
}
