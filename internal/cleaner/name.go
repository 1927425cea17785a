package cleaner

import (
	"regexp"
	"strings"
)

// Honorific and connective noise observed across the source sites.
// Matched before title-casing, so upper-case variants are listed
// explicitly.
var reHonorific = regexp.MustCompile(`(^Dr\. )|(\sa\s)|(Dra\. )|(DRA\. )|(Lic\. )|(DR\. )|(LIC\. )|(Drag\. )|(Y )`)

// Residual title fragments that survive title-casing.
var titleStripper = strings.NewReplacer(
	",", "",
	"Dr.", "",
	"M.D.", "",
	"&", "",
	"Under ", "",
	"Where ", "",
)

// FormulaError is the untranslated spreadsheet artifact some sources
// leak into the name column; rows carrying it are dropped downstream.
const FormulaError = "#Value!"

// CleanName strips honorifics from a raw display name, title-cases what
// remains and splits the token sequence at its midpoint (rounding up)
// into a first-name group and a last-name group.
//
// The midpoint split is a deliberate heuristic: the sources mix
// honorifics in several languages and give no reliable first/last
// boundary, so this is a tie-break, not a linguistic parse.
func CleanName(raw string) string {
	s := reHonorific.ReplaceAllString(raw, "")
	s = titleCase(s)
	s = titleStripper.Replace(s)
	s = CollapseWhitespace(s)

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	mid := (len(tokens) + 1) / 2
	first := strings.Join(tokens[:mid], " ")
	last := strings.Join(tokens[mid:], " ")
	return CollapseWhitespace(first + " " + last)
}

// DropName reports whether a cleaned name disqualifies the whole row:
// empty after cleaning, or carrying the spreadsheet formula-error
// artifact.
func DropName(cleaned string) bool {
	return cleaned == "" || cleaned == "," || strings.Contains(cleaned, FormulaError)
}
