// Package convert renders fetched documentation content as markdown text.
package convert

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ToMarkdown converts documentation content to markdown. HTML is converted;
// content that is already plain text or markdown passes through with any
// embedded tags stripped. The conversion is a pure function of its input.
func ToMarkdown(content string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert content to markdown: %w", err)
	}
	return markdown, nil
}
