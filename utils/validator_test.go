package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedInput struct {
	Name  string `validate:"required,min=2,max=50,org_name"`
	Slug  string `validate:"omitempty,min=2,max=50,org_slug"`
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=admin owner member"`
}

func validInput() validatedInput {
	return validatedInput{
		Name:  "Acme Construction",
		Slug:  "acme-construction",
		Email: "owner@acme.test",
		Role:  "owner",
	}
}

func TestValidateStructAccepts(t *testing.T) {
	require.NoError(t, ValidateStruct(validInput()))

	noSlug := validInput()
	noSlug.Slug = ""
	require.NoError(t, ValidateStruct(noSlug))
}

func TestValidateStructRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*validatedInput)
		message string
	}{
		{
			name:    "empty name",
			mutate:  func(in *validatedInput) { in.Name = "" },
			message: "name is required",
		},
		{
			name:    "name too short",
			mutate:  func(in *validatedInput) { in.Name = "A" },
			message: "name must be at least 2 characters",
		},
		{
			name:    "name with illegal characters",
			mutate:  func(in *validatedInput) { in.Name = "Acme!" },
			message: "name can only contain letters, numbers, spaces, and hyphens",
		},
		{
			name:    "slug with uppercase",
			mutate:  func(in *validatedInput) { in.Slug = "Acme" },
			message: "slug can only contain lowercase letters, numbers, and hyphens",
		},
		{
			name:    "malformed email",
			mutate:  func(in *validatedInput) { in.Email = "not-an-email" },
			message: "email must be a valid email",
		},
		{
			name:    "unknown role",
			mutate:  func(in *validatedInput) { in.Role = "superuser" },
			message: "role must be one of: admin owner member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateStruct(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
