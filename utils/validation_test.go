package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupLike struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user admin"`
	Date  string `json:"pickup_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		in   signupLike
		want string
	}{
		{signupLike{}, "email is required"},
		{signupLike{Email: "nope"}, "email must be a valid email address"},
		{signupLike{Email: "a@x.com", Role: "root"}, "role must be one of: user admin"},
		{signupLike{Email: "a@x.com", Date: "10/01/2026"}, "pickup_date must match the format 2006-01-02"},
	}
	for _, tt := range tests {
		err := ValidateStruct(tt.in)
		require.Error(t, err)
		assert.Equal(t, tt.want, ValidationMessage(err))
	}

	assert.NoError(t, ValidateStruct(signupLike{Email: "a@x.com", Role: "admin", Date: "2026-01-10"}))
	assert.Equal(t, "Invalid request payload", ValidationMessage(errors.New("boom")))
}

func TestMaxBytes(t *testing.T) {
	type secret struct {
		Password string `json:"password" validate:"required,maxbytes=72"`
	}

	assert.NoError(t, ValidateStruct(secret{Password: strings.Repeat("a", 72)}))
	assert.NoError(t, ValidateStruct(secret{Password: strings.Repeat("é", 36)}))

	// 60 runes but 120 bytes
	err := ValidateStruct(secret{Password: strings.Repeat("é", 60)})
	require.Error(t, err)
	assert.Equal(t, "password must be at most 72 bytes", ValidationMessage(err))
}
