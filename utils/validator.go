package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	orgNameRegex = regexp.MustCompile(`^[\w\s-]+$`)
	orgSlugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Organization and team names: letters, numbers, spaces, hyphens
	_ = v.RegisterValidation("org_name", func(fl validator.FieldLevel) bool {
		return orgNameRegex.MatchString(fl.Field().String())
	})

	// Slugs: lowercase letters, numbers, hyphens
	_ = v.RegisterValidation("org_slug", func(fl validator.FieldLevel) bool {
		return orgSlugRegex.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	// Format validation errors
	var errors []string
	for _, err := range err.(validator.ValidationErrors) {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errors = append(errors, field+" is required")
		case "min":
			errors = append(errors, field+" must be at least "+param+" characters")
		case "max":
			errors = append(errors, field+" must be at most "+param+" characters")
		case "email":
			errors = append(errors, field+" must be a valid email")
		case "url":
			errors = append(errors, field+" must be a valid URL")
		case "oneof":
			errors = append(errors, field+" must be one of: "+param)
		case "org_name":
			errors = append(errors, field+" can only contain letters, numbers, spaces, and hyphens")
		case "org_slug":
			errors = append(errors, field+" can only contain lowercase letters, numbers, and hyphens")
		default:
			errors = append(errors, field+" is invalid")
		}
	}

	return fmt.Errorf(strings.Join(errors, ", "))
}
