package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches runs of characters that cannot appear in a slug.
	slugSeparators = regexp.MustCompile(`[\s/\\_.,:;!?"'()\[\]{}+*&%$#@^=|~<>]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL-safe slug while keeping non-Latin
// letters intact, since genre labels in the catalog are Arabic.
// "Science Fiction" -> "science-fiction".
// "أكشن" -> "أكشن".
func Slugify(s string) string {
	// Normalize unicode so visually equal strings slug identically.
	s = norm.NFKC.String(s)

	s = strings.ToLower(s)

	// Replace separators and punctuation with hyphens.
	s = slugSeparators.ReplaceAllString(s, "-")

	// Drop anything that is not a letter, digit, or hyphen.
	s = strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	return s
}
