// Package validation holds input rules shared by the services.
package validation

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MaxEmailLength is the longest address the users table accepts.
const MaxEmailLength = 254

// NormalizeEmail trims the address and lowercases its domain part.
// The local part is kept as written.
func NormalizeEmail(raw string) string {
	email := strings.TrimSpace(raw)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// EmailRules are the rules applied to a normalized email.
func EmailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("email is required"),
		validation.Length(3, MaxEmailLength),
		is.EmailFormat.Error("invalid email format"),
	}
}

// ValidateEmail checks a normalized email.
func ValidateEmail(email string) error {
	return validation.Validate(email, EmailRules()...)
}

// EmailLocalPart returns the part before the last @.
func EmailLocalPart(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
