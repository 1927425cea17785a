package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the external canonical-schema definition: the ordered list
// of output field names every exported dataset must match, plus the
// country-code lookup tables shared by the cleaner and the geocoder.
type Schema struct {
	DoctorFields []string          `yaml:"doctor_fields"`
	CountryNames map[string]string `yaml:"country_names"`
	CountryISOs  map[string]string `yaml:"country_isos"`
}

func LoadSchema(path string) (*Schema, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var schema Schema
	if err := yaml.Unmarshal(blob, &schema); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	if len(schema.DoctorFields) == 0 {
		return nil, fmt.Errorf("schema %s has no doctor_fields", path)
	}
	return &schema, nil
}

// CountryName resolves a country code to its display name, falling back
// to the code itself for countries the schema does not know.
func (s *Schema) CountryName(code string) string {
	if name, ok := s.CountryNames[code]; ok {
		return name
	}
	return code
}
