package cleaner

import (
	"regexp"
	"strings"
)

// Standalone connectives between language names ("English and Spanish",
// "Inglés y Español"). Matched on word boundaries so names like
// "Mandarin" stay intact.
var reLangConnective = regexp.MustCompile(`\b(and|y)\b`)

// DefaultLanguage is assumed when a source lists no spoken languages;
// every covered country is Spanish-speaking.
const DefaultLanguage = "Spanish"

// CleanLanguages normalizes raw spoken-languages text into a trimmed,
// comma-joined list, defaulting to Spanish when nothing survives.
func CleanLanguages(raw *string) string {
	if raw == nil {
		return DefaultLanguage
	}

	s := strings.ReplaceAll(*raw, ".", "")
	s = reLangConnective.ReplaceAllString(s, ",")

	kept := make([]string, 0, 4)
	for _, token := range strings.Split(s, ",") {
		if token = CollapseWhitespace(token); token != "" {
			kept = append(kept, token)
		}
	}
	if len(kept) == 0 {
		return DefaultLanguage
	}
	return strings.Join(kept, ", ")
}
