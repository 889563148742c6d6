package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("passes when all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Alice"),
			validator.ValidEmail("email", "alice@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failing rule", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.True(t, verrs.Has("name"))
		assert.True(t, verrs.Has("email"))
	})

	t.Run("non-validation error extracts nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, validator.ExtractValidationErrors(assert.AnError))
		assert.False(t, validator.IsValidationError(assert.AnError))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"user+tag@example.co.uk",
		"first.last@sub.example.org",
	}
	for _, email := range valid {
		assert.True(t, validator.ValidEmail("email", email).Check(), email)
	}

	invalid := []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"Display Name <user@example.com>",
	}
	for _, email := range invalid {
		assert.False(t, validator.ValidEmail("email", email).Check(), email)
	}
}

func TestOTPCode(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.OTPCode("code", "123456").Check())
	assert.False(t, validator.OTPCode("code", "12345").Check())
	assert.False(t, validator.OTPCode("code", "1234567").Check())
	assert.False(t, validator.OTPCode("code", "12345a").Check())
	assert.False(t, validator.OTPCode("code", "").Check())
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	cfg := validator.DefaultPasswordStrength()

	assert.True(t, validator.StrongPassword("password", "secret123", cfg).Check())
	assert.True(t, validator.StrongPassword("password", "Secure!Pass", cfg).Check())

	assert.False(t, validator.StrongPassword("password", "short1", cfg).Check(), "below min length")
	assert.False(t, validator.StrongPassword("password", "alllowercase", cfg).Check(), "single char class")
}
