package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlester/mcpdoc/internal/convert"
)

func TestToMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		contains []string
	}{
		{
			name:     "html heading and paragraph",
			content:  "<h1>Docs</h1><p>Hello <strong>world</strong></p>",
			contains: []string{"Docs", "Hello", "**world**"},
		},
		{
			name:     "html link",
			content:  `<a href="https://example.com/">example</a>`,
			contains: []string{"[example](https://example.com/)"},
		},
		{
			name:     "plain text passes through",
			content:  "Hello plain documentation",
			contains: []string{"Hello plain documentation"},
		},
		{
			name:     "markdown text keeps its words",
			content:  "# Hello\n\nSome llms.txt content",
			contains: []string{"Hello", "Some llms.txt content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markdown, err := convert.ToMarkdown(tt.content)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, markdown, want)
			}
		})
	}
}
