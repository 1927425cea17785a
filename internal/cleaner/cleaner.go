// Package cleaner implements the normalization pipeline that turns raw
// scraped provider rows into canonical records: per-field normalizers,
// the record assembler, and the schema reindex step.
package cleaner

import (
	"log/slog"
	"strings"

	"github.com/mario-agban/CarpeMed/internal"
	"github.com/mario-agban/CarpeMed/internal/config"
	"github.com/mario-agban/CarpeMed/internal/registry"
)

// Cleaner assembles canonical records for one country per run. It owns
// its loaded alias table and registry handles; nothing here is shared
// process-wide state.
type Cleaner struct {
	schema  *config.Schema
	aliases AliasTable
	ids     *registry.IdentityRegistry
	locs    *registry.LocationRegistry
}

func New(
	schema *config.Schema,
	aliases AliasTable,
	ids *registry.IdentityRegistry,
	locs *registry.LocationRegistry,
) *Cleaner {
	return &Cleaner{schema: schema, aliases: aliases, ids: ids, locs: locs}
}

// Clean runs the full assembly for one country's raw rows: dedupe by
// raw name, apply every field normalizer, drop sentinel names, resolve
// identity, join locations, and collapse residual whitespace. The
// second return value counts rows dropped for an unusable name;
// duplicate raw rows collapsed up front are not drops. Output order is
// not guaranteed to be meaningful. A bad value in one field never
// aborts the batch; the field gets its null/default and the row flows
// on.
func (c *Cleaner) Clean(country string, raws []internal.RawProviderRecord) ([]internal.DoctorRecord, int) {
	countryName := c.schema.CountryName(country)

	out := make([]internal.DoctorRecord, 0, len(raws))
	dropped := 0
	for _, raw := range dedupeByName(raws) {
		name := ""
		if raw.Name != nil {
			name = CleanName(*raw.Name)
		}
		if DropName(name) {
			dropped++
			slog.Warn("dropping row with unusable name",
				"country", country, "raw", deref(raw.Name))
			continue
		}

		rec := internal.DoctorRecord{
			DoctorID:              c.ids.Resolve(name),
			Name:                  name,
			Provider:              CleanProvider(raw.Provider, c.aliases),
			SpokenLanguages:       CleanLanguages(raw.SpokenLanguages),
			Email:                 CleanEmail(raw.Email),
			Education:             CleanEducation(raw.Education),
			OtherActivities:       CleanFreeText(raw.OtherActivities),
			AdditionalInformation: CleanAdditionalInformation(raw.AdditionalInformation),
			PhotoURL:              CleanPhotoURL(raw.PhotoURL),
			Country:               countryName,
			Website:               trimmed(raw.Website),
		}

		loc, phone := c.locs.Join(deref(raw.Location), countryName)
		rec.Location = &loc
		rec.PhoneNumber = phone
		if loc.LocationName == internal.ExternalOffice {
			slog.Warn("no registry match for location, using external office",
				"country", country, "name", name, "raw", deref(raw.Location))
		}

		rec.City = loc.City
		if rec.City == nil {
			rec.City = trimmed(raw.City)
		}

		finalWhitespacePass(&rec)
		out = append(out, rec)
	}

	slog.Info("cleaned country dataset",
		"country", country, "records", len(out), "dropped", dropped,
		"newIdentities", c.ids.Dirty())
	return out, dropped
}

// Reindex projects records onto the configured canonical field list:
// listed fields the records lack come out nil, anything not listed is
// dropped. The exported column set must equal the list exactly.
func Reindex(records []internal.DoctorRecord, fields []string) []map[string]any {
	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(fields))
		for _, field := range fields {
			row[field] = fieldValue(rec, field)
		}
		rows = append(rows, row)
	}
	return rows
}

func fieldValue(rec internal.DoctorRecord, field string) any {
	switch field {
	case "doctorId":
		return rec.DoctorID
	case "name":
		return rec.Name
	case "provider":
		return ptrValue(rec.Provider)
	case "spokenLanguages":
		return rec.SpokenLanguages
	case "email":
		return ptrValue(rec.Email)
	case "education":
		if rec.Education == nil {
			return nil
		}
		return rec.Education
	case "otherActivities":
		return ptrValue(rec.OtherActivities)
	case "additionalInformation":
		return ptrValue(rec.AdditionalInformation)
	case "photoUrl":
		return ptrValue(rec.PhotoURL)
	case "location":
		if rec.Location == nil {
			return nil
		}
		return *rec.Location
	case "phoneNumber":
		return ptrValue(rec.PhoneNumber)
	case "city":
		return ptrValue(rec.City)
	case "country":
		return rec.Country
	case "website":
		return ptrValue(rec.Website)
	default:
		return nil
	}
}

// dedupeByName collapses rows sharing an identical raw name, keeping
// the first occurrence. Rows without a name pass through untouched;
// they are judged later by the cleaned-name filter.
func dedupeByName(raws []internal.RawProviderRecord) []internal.RawProviderRecord {
	seen := map[string]struct{}{}
	out := make([]internal.RawProviderRecord, 0, len(raws))
	for _, raw := range raws {
		if raw.Name != nil {
			if _, dup := seen[*raw.Name]; dup {
				continue
			}
			seen[*raw.Name] = struct{}{}
		}
		out = append(out, raw)
	}
	return out
}

// finalWhitespacePass collapses repeated interior whitespace across
// every string field of the assembled record.
func finalWhitespacePass(rec *internal.DoctorRecord) {
	rec.Name = CollapseWhitespace(rec.Name)
	rec.SpokenLanguages = CollapseWhitespace(rec.SpokenLanguages)
	collapse := func(v *string) *string {
		if v == nil {
			return nil
		}
		s := CollapseWhitespace(*v)
		return &s
	}
	rec.Provider = collapse(rec.Provider)
	rec.Email = collapse(rec.Email)
	rec.OtherActivities = collapse(rec.OtherActivities)
	rec.AdditionalInformation = collapse(rec.AdditionalInformation)
	rec.PhotoURL = collapse(rec.PhotoURL)
	rec.PhoneNumber = collapse(rec.PhoneNumber)
	rec.City = collapse(rec.City)
	rec.Website = collapse(rec.Website)
	rec.Country = CollapseWhitespace(rec.Country)
	for i := range rec.Education {
		rec.Education[i].Title = CollapseWhitespace(rec.Education[i].Title)
		rec.Education[i].Date = collapse(rec.Education[i].Date)
		rec.Education[i].Issuer = collapse(rec.Education[i].Issuer)
	}
}

func ptrValue(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
