package validation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// bcrypt ignores input beyond 72 bytes, so longer passwords are refused.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// ValidatePassword checks a raw password before it is hashed.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.RuneLength(MinPasswordLength, 0).Error("password must be at least 8 characters"),
		validation.By(func(interface{}) error {
			if len(password) > MaxPasswordLength {
				return validation.NewError("validation_password_too_long", "password must be at most 72 bytes")
			}
			return nil
		}),
	)
}
