package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/republicadrc/memberkit/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  John.Doe@EXAMPLE.COM  ", "john.doe@example.com"},
		{"consolidates dots", "a..b@example.com", "a.b@example.com"},
		{"strips boundary dots", ".abc.@example.com", "abc@example.com"},
		{"preserves plus tags", "User+Tag@Example.com", "user+tag@example.com"},
		{"no at sign passes through", "  NOT-AN-EMAIL ", "not-an-email"},
		{"multiple at signs pass through", "a@b@c", "a@b@c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestExtractEmailDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", sanitizer.ExtractEmailDomain("user@EXAMPLE.com"))
	assert.Equal(t, "", sanitizer.ExtractEmailDomain("no-domain"))
}
