package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every HTML tag from user supplied text. The policy
// escapes entities on the way out, those are decoded again since the result
// is stored and served as plain text.
func SanitizeText(input string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(input)))
}

// SanitizeTextPtr is SanitizeText for optional fields.
func SanitizeTextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	clean := SanitizeText(*input)
	return &clean
}
