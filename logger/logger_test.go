package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bearer token in header",
			input:    "Authorization: Bearer sk-abc123.def_456",
			expected: "Authorization: Bearer [REDACTED]",
		},
		{
			name:     "bearer token in body",
			input:    `{"headers": {"Authorization": "Bearer xyz789"}}`,
			expected: `{"headers": {"Authorization": "Bearer [REDACTED]"}}`,
		},
		{
			name:     "no token",
			input:    "plain text without secrets",
			expected: "plain text without secrets",
		},
		{
			name:     "multiple tokens",
			input:    "Bearer one and Bearer two",
			expected: "Bearer [REDACTED] and Bearer [REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RedactSensitiveData(tt.input))
		})
	}
}
