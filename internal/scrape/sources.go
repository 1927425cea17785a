// Package scrape holds the raw-data side of the pipeline: per-hospital
// source descriptors, the site adapters that produce raw provider
// records, and the dated raw-file store the cleaner reads from.
package scrape

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one hospital website or API to harvest. The
// adapters are generic; everything site-specific lives in this
// descriptor.
type Source struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Country   string `yaml:"country"`
	City      string `yaml:"city"`
	Language  string `yaml:"language"`

	// Strategy selects the adapter: "static" or "hospiten".
	Strategy string `yaml:"strategy"`

	// Static-page adapter settings.
	IndexURL     string            `yaml:"index_url"`
	LinkSelector string            `yaml:"link_selector"`
	Selectors    map[string]string `yaml:"selectors"`
	Pagination   *Pagination       `yaml:"pagination"`

	// Hospiten API settings.
	Hospiten *HospitenSource `yaml:"hospiten"`
}

// Pagination describes how a directory index is split across pages:
// a query suffix appended to index_url plus either an explicit value
// list (alphabet pages) or a numeric page count (1..count). Absent
// pagination means the index is a single page.
type Pagination struct {
	Param  string   `yaml:"param"`
	Values []string `yaml:"values"`
	Count  int      `yaml:"count"`
}

// PageURLs expands the index URL into the full list of index pages.
func (p *Pagination) PageURLs(indexURL string) []string {
	if p == nil || p.Param == "" {
		return []string{indexURL}
	}
	if len(p.Values) > 0 {
		urls := make([]string, 0, len(p.Values))
		for _, v := range p.Values {
			urls = append(urls, indexURL+p.Param+v)
		}
		return urls
	}
	urls := make([]string, 0, p.Count)
	for page := 1; page <= p.Count; page++ {
		urls = append(urls, fmt.Sprintf("%s%s%d", indexURL, p.Param, page))
	}
	return urls
}

// HospitenSource configures the Hospiten professional-directory API.
type HospitenSource struct {
	ModuleID int `yaml:"module_id"`
	TabID    int `yaml:"tab_id"`
	PageSize int `yaml:"page_size"`
	CenterID int `yaml:"center_id"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the source descriptors, optionally filtered by
// country code.
func LoadSources(path, country string) ([]Source, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	var file sourcesFile
	if err := yaml.Unmarshal(blob, &file); err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}

	if country == "" {
		return file.Sources, nil
	}
	out := make([]Source, 0, len(file.Sources))
	for _, src := range file.Sources {
		if src.Country == country {
			out = append(out, src)
		}
	}
	return out, nil
}
