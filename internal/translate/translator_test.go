package translate

import (
	"testing"

	"github.com/mario-agban/CarpeMed/internal"
)

func TestTranslationFormula(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  any
	}{
		{name: "plain text", input: "Cardiólogo", want: `=GOOGLETRANSLATE("Cardiólogo")`},
		{name: "empty stays empty", input: "", want: ""},
		{name: "blank stays empty", input: "   ", want: ""},
		{name: "double quotes stripped", input: `dice "hola"`, want: `=GOOGLETRANSLATE("dice hola")`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translationFormula(tc.input); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestStillLoading(t *testing.T) {
	loading := [][]string{
		{"name", "provider"},
		{"Juan Pérez", loadingSentinel},
	}
	if !stillLoading(loading) {
		t.Fatal("sentinel cell not detected")
	}

	done := [][]string{
		{"name", "provider"},
		{"Juan Pérez", "Cardiologist"},
	}
	if stillLoading(done) {
		t.Fatal("finished table reported as loading")
	}
	if stillLoading(nil) {
		t.Fatal("empty table reported as loading")
	}
}

func TestQuoteRange(t *testing.T) {
	if got := quoteRange("hospiten_sd"); got != "'hospiten_sd'" {
		t.Fatalf("got %q", got)
	}
	if got := quoteRange("o'neill"); got != "'o''neill'" {
		t.Fatalf("got %q", got)
	}
}

func TestRecordsTableRoundTrip(t *testing.T) {
	name := "Dr. Juan Pérez"
	provider := "Cardiología"
	records := []internal.RawProviderRecord{
		{Name: &name, Provider: &provider, Country: "dr"},
		{Country: "dr"},
	}

	header, rows := recordsToTable(records)
	if len(header) != len(rawFields) {
		t.Fatalf("header has %d columns want %d", len(header), len(rawFields))
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows want 2", len(rows))
	}

	back := tableToRecords(header, rows)
	if len(back) != 2 {
		t.Fatalf("got %d records want 2", len(back))
	}
	if back[0].Name == nil || *back[0].Name != name {
		t.Fatalf("name %v", back[0].Name)
	}
	if back[0].Provider == nil || *back[0].Provider != provider {
		t.Fatalf("provider %v", back[0].Provider)
	}
	if back[0].Country != "dr" {
		t.Fatalf("country %q", back[0].Country)
	}
	if back[1].Name != nil {
		t.Fatalf("empty cell became %q", *back[1].Name)
	}
}

func TestTableToRecordsSkipsNoneCells(t *testing.T) {
	rows := [][]string{{"None", "Cardiología"}}
	records := tableToRecords([]string{"name", "provider"}, rows)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Name != nil {
		t.Fatalf("None cell became %q", *records[0].Name)
	}
	if records[0].Provider == nil || *records[0].Provider != "Cardiología" {
		t.Fatalf("provider %v", records[0].Provider)
	}
}
