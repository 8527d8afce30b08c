package internal

import "testing"

func TestExtractRichText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single paragraph",
			input: `{"root":{"children":[{"children":[{"text":"Hello world"}]}]}}`,
			want:  "Hello world",
		},
		{
			name:  "multiple leaves joined by newline",
			input: `{"root":{"children":[{"children":[{"text":"first"},{"text":"second"}]},{"children":[{"text":"third"}]}]}}`,
			want:  "first\nsecond\nthird",
		},
		{
			name:  "empty leaves skipped",
			input: `{"root":{"children":[{"children":[{"text":""},{"text":"kept"}]}]}}`,
			want:  "kept",
		},
		{
			name:  "no root",
			input: `{"children":[{"text":"orphan"}]}`,
			want:  "",
		},
		{
			name:  "invalid JSON",
			input: `{not json`,
			want:  "",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRichText(tt.input); got != tt.want {
				t.Errorf("ExtractRichText() = %q, want %q", got, tt.want)
			}
		})
	}
}
