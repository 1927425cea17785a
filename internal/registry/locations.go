package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mario-agban/CarpeMed/internal"
)

// locationColumns is the column order of the registry CSV.
var locationColumns = []string{
	"locationName", "location", "city", "state", "country",
	"zipCode", "phoneNumber", "latitude", "longitude", "hoursOperation",
}

// LocationRegistry is the curated lookup table of known provider
// locations, keyed by location name. Read-only during cleaning.
type LocationRegistry struct {
	byName map[string]internal.Location
}

// LoadLocationRegistry reads the registry from its CSV file. Columns
// are resolved by header name so curated edits can reorder them.
func LoadLocationRegistry(path string) (*LocationRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read location registry: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse location registry %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("location registry %s is empty", path)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["locationName"]; !ok {
		return nil, fmt.Errorf("location registry %s has no locationName column", path)
	}

	cell := func(row []string, name string) *string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return nil
		}
		v := strings.TrimSpace(row[i])
		if v == "" || v == "None" {
			return nil
		}
		return &v
	}
	coord := func(row []string, name string) *float64 {
		s := cell(row, name)
		if s == nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(*s, 64)
		if err != nil {
			return nil
		}
		return &parsed
	}

	byName := map[string]internal.Location{}
	for _, row := range rows[1:] {
		name := cell(row, "locationName")
		if name == nil {
			continue
		}
		byName[*name] = internal.Location{
			LocationName:   *name,
			Location:       cell(row, "location"),
			City:           cell(row, "city"),
			State:          cell(row, "state"),
			Country:        cell(row, "country"),
			ZipCode:        cell(row, "zipCode"),
			PhoneNumber:    cell(row, "phoneNumber"),
			Latitude:       coord(row, "latitude"),
			Longitude:      coord(row, "longitude"),
			HoursOperation: cell(row, "hoursOperation"),
		}
	}
	return &LocationRegistry{byName: byName}, nil
}

// Lookup returns the registry entry for an exact location name.
func (r *LocationRegistry) Lookup(name string) (internal.Location, bool) {
	loc, ok := r.byName[name]
	return loc, ok
}

// Len returns the number of registry entries.
func (r *LocationRegistry) Len() int {
	return len(r.byName)
}

// Join resolves raw scraped location text against the registry. The
// text is split on ", " into candidate names and matches are collected
// in encounter order; the first match supplies both the location record
// and the phone number. When several candidates match different
// entries, only the first is kept — lossy on purpose, matching the
// historical datasets. Zero matches fall back to a synthetic
// "External Office" pseudo-location that preserves the raw text, so a
// record is never dropped for an unknown location.
func (r *LocationRegistry) Join(rawLocation, countryName string) (internal.Location, *string) {
	raw := strings.TrimSpace(rawLocation)

	for _, candidate := range strings.Split(raw, ", ") {
		if loc, ok := r.byName[strings.TrimSpace(candidate)]; ok {
			return loc, loc.PhoneNumber
		}
	}

	fallback := internal.Location{
		LocationName: internal.ExternalOffice,
		Country:      &countryName,
	}
	if raw != "" {
		fallback.Location = &raw
	}
	return fallback, nil
}

// SaveLocationsCSV writes location rows in the registry's CSV layout.
// Used by the geocode aggregation step that (re)builds the registry.
func SaveLocationsCSV(path string, locations []internal.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write location registry: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(locationColumns); err != nil {
		return err
	}
	str := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	for _, loc := range locations {
		row := []string{
			loc.LocationName,
			str(loc.Location),
			str(loc.City),
			str(loc.State),
			str(loc.Country),
			str(loc.ZipCode),
			str(loc.PhoneNumber),
			"",
			"",
			str(loc.HoursOperation),
		}
		if loc.Latitude != nil {
			row[7] = strconv.FormatFloat(*loc.Latitude, 'f', -1, 64)
		}
		if loc.Longitude != nil {
			row[8] = strconv.FormatFloat(*loc.Longitude, 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
