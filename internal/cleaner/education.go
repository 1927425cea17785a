package cleaner

import (
	"regexp"
	"strings"

	"github.com/mario-agban/CarpeMed/internal"
)

var (
	reYear   = regexp.MustCompile(`\d{4}`)
	reIssuer = regexp.MustCompile(`University[\w\s]*`)
)

// CleanEducation splits raw credentials text on '|' and extracts a
// structured entry per piece: every 4-digit run becomes a candidate
// year, every substring starting with a recognized institution keyword
// becomes a candidate issuer, and the full piece is kept as the title.
// Entries where extraction finds nothing keep nil date/issuer; the row
// never fails on their account.
func CleanEducation(raw *string) []internal.EducationEntry {
	if raw == nil {
		return nil
	}

	s := strings.NewReplacer("\n", "", " ", "").Replace(*raw)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	pieces := strings.Split(s, "|")
	entries := make([]internal.EducationEntry, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		entry := internal.EducationEntry{Title: piece}

		if years := reYear.FindAllString(piece, -1); len(years) > 0 {
			date := strings.Join(years, ", ")
			entry.Date = &date
		}
		if issuers := reIssuer.FindAllString(piece, -1); len(issuers) > 0 {
			for i, found := range issuers {
				issuers[i] = strings.TrimSpace(found)
			}
			issuer := strings.Join(issuers, ", ")
			entry.Issuer = &issuer
		}
		entries = append(entries, entry)
	}
	return entries
}
