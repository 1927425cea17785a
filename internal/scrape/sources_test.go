package scrape

import (
	"os"
	"path/filepath"
	"testing"
)

const sourcesYAML = `sources:
  - name: Hospiten Santo Domingo
    short_name: hospiten_sd
    country: dr
    city: Santo Domingo
    language: es
    strategy: hospiten
    hospiten:
      module_id: 14716
      tab_id: 2716
      page_size: 200
      center_id: 7
  - name: Hospital Angeles
    short_name: angeles
    country: mx
    city: Tijuana
    language: es
    strategy: static
    index_url: https://example.mx/directorio
    pagination:
      param: "?letra="
      values: [A, B]
    link_selector: "a:has(img)"
    selectors:
      name: "h1.doctor-name"
      provider: "div.specialty"
`

func writeSources(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(sourcesYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSources(t)

	all, err := LoadSources(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d sources want 2", len(all))
	}

	hospiten := all[0]
	if hospiten.ShortName != "hospiten_sd" || hospiten.Strategy != "hospiten" {
		t.Fatalf("source %+v", hospiten)
	}
	if hospiten.Hospiten == nil || hospiten.Hospiten.PageSize != 200 || hospiten.Hospiten.CenterID != 7 {
		t.Fatalf("hospiten settings %+v", hospiten.Hospiten)
	}

	static := all[1]
	if static.Strategy != "static" || static.LinkSelector != "a:has(img)" {
		t.Fatalf("source %+v", static)
	}
	if static.Selectors["name"] != "h1.doctor-name" {
		t.Fatalf("selectors %v", static.Selectors)
	}
	if static.Pagination == nil || static.Pagination.Param != "?letra=" || len(static.Pagination.Values) != 2 {
		t.Fatalf("pagination %+v", static.Pagination)
	}
	if static.Hospiten != nil {
		t.Fatalf("static source carries hospiten settings: %+v", static.Hospiten)
	}
}

func TestPaginationPageURLs(t *testing.T) {
	base := "https://example.mx/directorio"

	var none *Pagination
	if got := none.PageURLs(base); len(got) != 1 || got[0] != base {
		t.Fatalf("nil pagination %v", got)
	}

	letters := &Pagination{Param: "?letra=", Values: []string{"A", "B", "C"}}
	got := letters.PageURLs(base)
	if len(got) != 3 || got[0] != base+"?letra=A" || got[2] != base+"?letra=C" {
		t.Fatalf("value pages %v", got)
	}

	numbered := &Pagination{Param: "?_pagi_pg=", Count: 4}
	got = numbered.PageURLs(base)
	if len(got) != 4 || got[0] != base+"?_pagi_pg=1" || got[3] != base+"?_pagi_pg=4" {
		t.Fatalf("numbered pages %v", got)
	}
}

func TestLoadSourcesCountryFilter(t *testing.T) {
	path := writeSources(t)

	mx, err := LoadSources(path, "mx")
	if err != nil {
		t.Fatal(err)
	}
	if len(mx) != 1 || mx[0].ShortName != "angeles" {
		t.Fatalf("filtered sources %+v", mx)
	}

	none, err := LoadSources(path, "cr")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("got %d sources for unknown country", len(none))
	}
}
