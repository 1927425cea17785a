package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reSpaces   = regexp.MustCompile(`\s+`)
	reArtifact = regexp.MustCompile(`[â?]`)
)

// CollapseWhitespace folds every run of whitespace (including newlines
// and non-breaking spaces smuggled in by site markup) into one space.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// CleanFreeText normalizes a delimiter-separated free-text field such
// as otherActivities: whitespace collapsed, entries trimmed and
// rejoined with ", ".
func CleanFreeText(raw *string) *string {
	if raw == nil {
		return nil
	}
	parts := strings.Split(CollapseWhitespace(*raw), "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	out := strings.Join(parts, ", ")
	return &out
}

// CleanAdditionalInformation behaves like CleanFreeText but also drops
// known mojibake characters and collapses an empty result to nil.
func CleanAdditionalInformation(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := reArtifact.ReplaceAllString(*raw, "")
	parts := strings.Split(CollapseWhitespace(s), "|")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	out := CollapseWhitespace(strings.Join(kept, ", "))
	if out == "" {
		return nil
	}
	return &out
}

// titleCase matches the title-casing the raw data was cleaned with
// historically: the first letter after any non-letter is upper-cased,
// every other letter lower-cased.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && prevLetter:
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
			continue
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
