package geocode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMetadata reads the curated aggregation input file.
func LoadMetadata(path string) (Metadata, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location metadata: %w", err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(blob, &meta); err != nil {
		return nil, fmt.Errorf("parse location metadata %s: %w", path, err)
	}
	return meta, nil
}
