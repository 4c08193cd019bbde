package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spaces become hyphens", input: "Acme Construction", expected: "acme-construction"},
		{name: "already a slug", input: "acme-construction", expected: "acme-construction"},
		{name: "multiple spaces collapse", input: "Acme   Construction  Co", expected: "acme-construction-co"},
		{name: "surrounding whitespace trimmed", input: "  Acme  ", expected: "acme"},
		{name: "mixed case lowered", input: "BuildRight", expected: "buildright"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
