package validation_test

import (
	"errors"
	"testing"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/validation"
	"github.com/chirper-app/chirper/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCollectsFirstFailurePerField(t *testing.T) {
	errs := validation.Errors{}

	validation.Check(errs, "email", "",
		validation.Required("Email is required"),
		validation.Email("Email is invalid"),
	)
	validation.Check(errs, "name", "A",
		validation.Required("Name is required"),
		validation.LengthBetween(2, 100, "Name length must be from 2 to 100"),
	)
	validation.Check(errs, "website", "https://example.com",
		validation.LengthBetween(1, 200, "Website length invalid"),
	)

	require.Len(t, errs, 2)
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Name length must be from 2 to 100", errs["name"])
}

func TestErrsErrPackagesValidationError(t *testing.T) {
	errs := validation.Errors{}
	require.NoError(t, errs.Err())

	validation.Check(errs, "email", "not-an-email", validation.Email("Email is invalid"))
	err := errs.Err()
	require.Error(t, err)

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Validation Error", verr.Message)
	assert.Equal(t, "Email is invalid", verr.Errors["email"])
}

func TestISODate(t *testing.T) {
	rule := validation.ISODate("Date of birth must be ISO8601")
	assert.NoError(t, rule("1990-01-01"))
	assert.NoError(t, rule("1990-01-01T00:00:00Z"))
	assert.Error(t, rule("01/01/1990"))
}

func TestPasswordRuleUsesPolicy(t *testing.T) {
	policy := config.PasswordPolicy{
		MinLength:        6,
		MaxLength:        50,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}
	rule := validation.Password(policy)
	assert.NoError(t, rule("Aa1!aa"))
	assert.Error(t, rule("aaaaaa"))
}

func TestEqualTo(t *testing.T) {
	rule := validation.EqualTo("secret", "Password confirmation does not match")
	assert.NoError(t, rule("secret"))
	assert.Error(t, rule("other"))
}

func TestUsernameAndUUID(t *testing.T) {
	assert.NoError(t, validation.Username("bad")("john_doe"))
	assert.Error(t, validation.Username("bad")("jd"))
	assert.NoError(t, validation.UUID("bad")("3f1c3f9a-8a43-4b86-9a2e-0f35b6e1c001"))
	assert.Error(t, validation.UUID("bad")("not-a-uuid"))
}
