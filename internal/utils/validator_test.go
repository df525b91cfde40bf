// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMessagesSpellOutLengths(t *testing.T) {
	type form struct {
		Name string `validate:"required,min=3,max=10"`
	}

	errs := GetValidationErrors(ValidateStruct(&form{Name: "ab"}))
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "Name must be at least 3 characters", errs[0].Message)

	errs = GetValidationErrors(ValidateStruct(&form{Name: "far too long a name"}))
	require.Len(t, errs, 1)
	assert.Equal(t, "Name must be at most 10 characters", errs[0].Message)
}

func TestStrongPasswordValidator(t *testing.T) {
	type form struct {
		Password string `validate:"strong_password"`
	}

	assert.NoError(t, ValidateStruct(&form{Password: "Sup3r$ecret"}))
	// 8 chars with all four classes is the minimum accepted
	assert.NoError(t, ValidateStruct(&form{Password: "short1$A"}))

	for _, weak := range []string{"2Sh0rt$", "alllowercase1$", "NoNumbers$$", "NoSpecials99"} {
		assert.Error(t, ValidateStruct(&form{Password: weak}), "%q should be rejected", weak)
	}
}
