package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"licenses": ["MIT"]}`,
			expected: `{"licenses": ["MIT"]}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"licenses\": [\"MIT\"]}\n```",
			expected: `{"licenses": ["MIT"]}`,
		},
		{
			name:     "plain fence",
			input:    "```\n{\"ok\": true}\n```",
			expected: `{"ok": true}`,
		},
		{
			name:     "leading prose",
			input:    "Here is the result you asked for:\n{\"alternatives\": []}",
			expected: `{"alternatives": []}`,
		},
		{
			name:     "prose both sides",
			input:    "Sure! {\"a\": 1} Hope that helps.",
			expected: `{"a": 1}`,
		},
		{
			name:     "no json at all",
			input:    "I cannot answer that.",
			expected: "I cannot answer that.",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t",
			expected: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.expected {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
