package translate

import (
	"context"

	"github.com/mario-agban/CarpeMed/internal"
)

// rawFields is the column order used when a raw record set round-trips
// through the translation sheet.
var rawFields = []string{
	"name", "provider", "spokenLanguages", "education", "otherActivities",
	"additionalInformation", "email", "photoUrl", "location", "website",
	"city", "country",
}

// TranslateRecords round-trips a raw record set through the
// translation sheet and reassembles the records.
func (t *Translator) TranslateRecords(ctx context.Context, name string, records []internal.RawProviderRecord) ([]internal.RawProviderRecord, error) {
	header, rows := recordsToTable(records)
	translated, err := t.TranslateTable(ctx, name, header, rows)
	if err != nil {
		return nil, err
	}
	return tableToRecords(header, translated), nil
}

func recordsToTable(records []internal.RawProviderRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(rawFields))
		for i, field := range rawFields {
			row[i] = rawFieldValue(rec, field)
		}
		rows = append(rows, row)
	}
	return rawFields, rows
}

func tableToRecords(header []string, rows [][]string) []internal.RawProviderRecord {
	records := make([]internal.RawProviderRecord, 0, len(rows))
	for _, row := range rows {
		var rec internal.RawProviderRecord
		for i, field := range header {
			if i >= len(row) {
				break
			}
			setRawFieldValue(&rec, field, row[i])
		}
		records = append(records, rec)
	}
	return records
}

func rawFieldValue(rec internal.RawProviderRecord, field string) string {
	get := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	switch field {
	case "name":
		return get(rec.Name)
	case "provider":
		return get(rec.Provider)
	case "spokenLanguages":
		return get(rec.SpokenLanguages)
	case "education":
		return get(rec.Education)
	case "otherActivities":
		return get(rec.OtherActivities)
	case "additionalInformation":
		return get(rec.AdditionalInformation)
	case "email":
		return get(rec.Email)
	case "photoUrl":
		return get(rec.PhotoURL)
	case "location":
		return get(rec.Location)
	case "website":
		return get(rec.Website)
	case "city":
		return get(rec.City)
	case "country":
		return rec.Country
	default:
		return ""
	}
}

func setRawFieldValue(rec *internal.RawProviderRecord, field, value string) {
	if field == "country" {
		rec.Country = value
		return
	}
	if value == "" || value == "None" {
		return
	}
	v := value
	switch field {
	case "name":
		rec.Name = &v
	case "provider":
		rec.Provider = &v
	case "spokenLanguages":
		rec.SpokenLanguages = &v
	case "education":
		rec.Education = &v
	case "otherActivities":
		rec.OtherActivities = &v
	case "additionalInformation":
		rec.AdditionalInformation = &v
	case "email":
		rec.Email = &v
	case "photoUrl":
		rec.PhotoURL = &v
	case "location":
		rec.Location = &v
	case "website":
		rec.Website = &v
	case "city":
		rec.City = &v
	}
}
