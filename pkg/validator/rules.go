package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	otpCodeRegex     = regexp.MustCompile(`^[0-9]{6}$`)
)

// Required checks that a string value is not blank.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

// ValidEmail checks that a value parses as a single addr-spec suitable for
// typical web use (one local part, one domain, no display name).
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}
			if addr.Address != value {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 {
				return false
			}
			if parts[0] == "" || parts[1] == "" {
				return false
			}
			return strings.Contains(parts[1], ".")
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// OTPCode checks that a value is a 6-digit numeric passcode.
func OTPCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return otpCodeRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a 6-digit code",
		},
	}
}

// PasswordStrengthConfig controls StrongPassword requirements.
type PasswordStrengthConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // Minimum number of different character classes required
}

// DefaultPasswordStrength returns the policy used across the application:
// 8-128 chars with at least two character classes.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:      8,
		MaxLength:      128,
		MinCharClasses: 2,
	}
}

// StrongPassword checks length bounds and character-class diversity.
func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < config.MinLength || len(value) > config.MaxLength {
				return false
			}

			charClasses := 0
			if uppercaseRegex.MatchString(value) {
				charClasses++
			}
			if lowercaseRegex.MatchString(value) {
				charClasses++
			}
			if digitRegex.MatchString(value) {
				charClasses++
			}
			if specialCharRegex.MatchString(value) {
				charClasses++
			}

			return charClasses >= config.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf("must be %d-%d characters with at least %d character classes",
				config.MinLength, config.MaxLength, config.MinCharClasses),
		},
	}
}
