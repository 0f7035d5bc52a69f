// Package validation is a small rule engine for request bodies: each field is
// checked against an explicit chain of Rule predicates and the first failure
// per field is collected into a field->message map. The collected map renders
// as a single 422 response. Checks that need the database (does this email
// exist, is this refresh token still persisted) do not belong here; services
// run those and abort with a StatusError instead of joining the aggregation.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/config"
)

// Rule checks a single field value and returns a message error on failure.
type Rule func(value string) error

type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Err packages collected failures into a ValidationError, or nil when clean.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return apperror.NewValidation(e)
}

// Check runs rules in order and records the first failure for the field.
func Check(errs Errors, field, value string, rules ...Rule) {
	for _, rule := range rules {
		if err := rule(value); err != nil {
			errs.Add(field, err.Error())
			return
		}
	}
}

func Required(message string) Rule {
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

func Email(message string) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

func LengthBetween(min, max int, message string) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if len(value) < min || len(value) > max {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

func Matches(re *regexp.Regexp, message string) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// ISODate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ISODate(message string) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if _, err := time.Parse(time.RFC3339, value); err == nil {
			return nil
		}
		if _, err := time.Parse("2006-01-02", value); err == nil {
			return nil
		}
		return fmt.Errorf("%s", message)
	}
}

func Password(policy config.PasswordPolicy) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		return policy.Validate(value)
	}
}

// EqualTo enforces confirmation fields matching their counterpart.
func EqualTo(other, message string) Rule {
	return func(value string) error {
		if value != other {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

func OneOf(allowed []string, message string) Rule {
	return func(value string) error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("%s", message)
	}
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{4,15}$`)

func Username(message string) Rule {
	return Matches(usernameRe, message)
}

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func UUID(message string) Rule {
	return Matches(uuidRe, message)
}
