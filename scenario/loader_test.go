package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - id: custom-greeting
    name: greeting check
    prompt: "Say hello in French."
    max_tokens: 30
    assertions:
      - type: content_includes
        params:
          patterns: ["bonjour"]
  - id: custom-chat
    category: smoke
    messages:
      - role: user
        content: "My favorite color is blue."
      - role: assistant
        content: "Noted!"
    prompt: "What is my favorite color?"
    assertions:
      - type: content_includes
        params:
          patterns: ["blue"]
`)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	first := scenarios[0]
	assert.Equal(t, "custom-greeting", first.ID)
	assert.Equal(t, "greeting check", first.Name)
	assert.Equal(t, Category("custom"), first.Category)
	assert.Equal(t, 30, first.MaxTokens)
	require.Len(t, first.Messages, 1)
	assert.Equal(t, "user", first.Messages[0].Role)
	require.Len(t, first.Assertions, 1)
	assert.Equal(t, "content_includes", first.Assertions[0].Type)

	second := scenarios[1]
	assert.Equal(t, Category("smoke"), second.Category)
	// Prompt appends a final user turn after the listed messages.
	require.Len(t, second.Messages, 3)
	assert.Equal(t, "What is my favorite color?", second.Messages[2].Content)
	// Name defaults to the id.
	assert.Equal(t, "custom-chat", second.Name)
}

func TestLoadFileRejectsIncompleteScenarios(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"empty file", "scenarios: []\n", "no scenarios"},
		{"missing id", "scenarios:\n  - prompt: hi\n    assertions: [{type: x}]\n", "no id"},
		{"missing prompt", "scenarios:\n  - id: a\n    assertions: [{type: x}]\n", "neither prompt nor messages"},
		{"missing assertions", "scenarios:\n  - id: a\n    prompt: hi\n", "no assertions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeScenarioFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
