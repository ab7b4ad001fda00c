// Package sanitize provides deterministic cleaning of free-form text fields
// before they enter the canonical resume shape. All functions are pure.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

// Per-field maximum lengths, in characters. These apply identically no matter
// where a field came from (extraction, generation, or caller input).
const (
	MaxName         = 120
	MaxJobTitle     = 120
	MaxIntro        = 1200
	MaxBullet       = 320
	MaxTechItem     = 60
	MaxLocation     = 120
	MaxEduField     = 160
	MaxLanguageName = 60
	MaxLinkLabel    = 80
	MaxLinkURL      = 220
	MaxContactField = 120
	MaxDateToken    = 40
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean normalizes a raw string: decode HTML entities, strip tags, strip
// emoji, collapse whitespace, trim, and cut at max characters. Returns the
// empty string when nothing survives; callers treat "" as absent.
func Clean(raw string, max int) string {
	text := html.UnescapeString(raw)
	text = StripTags(text)
	text = gomoji.RemoveEmojis(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if max > 0 {
		runes := []rune(text)
		if len(runes) > max {
			text = strings.TrimRight(string(runes[:max]), " ")
		}
	}
	return text
}

// StripTags replaces HTML-like tags with a single space. Replacement rather
// than deletion keeps words on either side of a tag from joining.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, " ")
}
