package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mario-agban/CarpeMed/internal"
)

// SaveRaw writes one source's scraped records as a dated raw file under
// the country's data directory: <dataDir>/<country>/YYYYMMDD_<short>_raw.json.
// Returns the written path.
func SaveRaw(dataDir, country, shortName string, records []internal.RawProviderRecord) (string, error) {
	dir := filepath.Join(dataDir, country)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	date := time.Now().UTC().Format("20060102")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_raw.json", date, shortName))

	blob, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", fmt.Errorf("write raw file: %w", err)
	}
	return path, nil
}

// CombineRaw loads every raw file for a country and concatenates the
// record sets. Raw files are the ones whose names carry both "raw" and
// the .json extension.
func CombineRaw(dataDir, country string) ([]internal.RawProviderRecord, error) {
	dir := filepath.Join(dataDir, country)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read raw data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.Contains(name, "raw") || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var all []internal.RawProviderRecord
	for _, name := range names {
		path := filepath.Join(dir, name)
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read raw file %s: %w", path, err)
		}
		var records []internal.RawProviderRecord
		if err := json.Unmarshal(blob, &records); err != nil {
			return nil, fmt.Errorf("parse raw file %s: %w", path, err)
		}
		all = append(all, records...)
	}
	return all, nil
}
