package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json untouched",
			input:    `{"name": "Ana"}`,
			expected: `{"name": "Ana"}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"name\": \"Ana\"}\n```",
			expected: `{"name": "Ana"}`,
		},
		{
			name:     "bare fence stripped",
			input:    "```\n{\"name\": \"Ana\"}\n```",
			expected: `{"name": "Ana"}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```JSON\n{\"name\": \"Ana\"}\n```",
			expected: `{"name": "Ana"}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n```json\n{}\n```  ",
			expected: "{}",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
