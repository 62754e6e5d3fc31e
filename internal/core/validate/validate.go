// Package validate implements the field format rules applied to contact data
// before any snapshot is taken or store write attempted. The rules are
// exported both as plain predicates, used by prompt re-ask loops, and as
// custom go-playground/validator tags for struct-level validation of input
// DTOs.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
	minBirthYear   = 1900
)

// IsValidName accepts non-empty strings of letters and spaces. Letters are
// unicode-aware so locale names pass.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// IsValidPhone accepts digit-only strings of 10 to 15 digits.
func IsValidPhone(s string) bool {
	if len(s) < minPhoneDigits || len(s) > maxPhoneDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidEmail requires an '@' that is neither the first nor last character,
// and a '.' somewhere after the '@' that is neither immediately adjacent to
// it nor at the end of the string.
func IsValidEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	for i := at + 2; i < len(s)-1; i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// IsValidLinkedin requires the linkedin.com host to appear in the URL.
func IsValidLinkedin(s string) bool {
	return strings.Contains(s, "linkedin.com")
}

// IsValidMonth reports whether m is a calendar month number.
func IsValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// ParseBirthdate parses a YYYY-MM-DD date and constrains the year to a sane
// range (1900 through the current year).
func ParseBirthdate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	if y := t.Year(); y < minBirthYear || y > time.Now().Year() {
		return time.Time{}, fmt.Errorf("birth year %d out of range", y)
	}
	return t, nil
}

// IsValidBirthdate is the predicate form of ParseBirthdate.
func IsValidBirthdate(s string) bool {
	_, err := ParseBirthdate(s)
	return err == nil
}

// New returns a validator with the contact field rules registered as tags:
// personname, phone, contactemail, linkedin and birthdate.
func New() *validator.Validate {
	v := validator.New()
	// RegisterValidation errors only on an empty tag name.
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("linkedin", func(fl validator.FieldLevel) bool {
		return IsValidLinkedin(fl.Field().String())
	})
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		return IsValidBirthdate(fl.Field().String())
	})
	return v
}

// Message flattens a validator error into one human-readable line for the
// console. Non-validation errors pass through unchanged.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "personname":
		return field + " must contain letters and spaces only"
	case "phone":
		return field + " must be 10-15 digits"
	case "contactemail":
		return field + " must be a valid email address"
	case "linkedin":
		return field + " must be a linkedin.com URL"
	case "birthdate":
		return field + " must be a valid YYYY-MM-DD date"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
