package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestSave(t *testing.T) {
	exportDir := t.TempDir()
	fields := []string{"doctorId", "name", "email"}
	rows := []map[string]any{
		{"doctorId": "id-1", "name": "Juan Pérez", "email": "jperez@clinic.do"},
		{"doctorId": "id-2", "name": "Ana Reyes", "email": nil},
	}

	result, err := Save(exportDir, "dominican_republic", fields, rows)
	if err != nil {
		t.Fatal(err)
	}

	stamp := time.Now().UTC().Format("010206")
	wantBase := filepath.Join(exportDir, stamp, "dominican_republic_"+stamp)
	if result.JSONPath != wantBase+".json" {
		t.Fatalf("json path %q", result.JSONPath)
	}
	if result.CSVPath != wantBase+".csv" {
		t.Fatalf("csv path %q", result.CSVPath)
	}
	if result.XLSXPath != wantBase+".xlsx" {
		t.Fatalf("xlsx path %q", result.XLSXPath)
	}

	blob, err := os.ReadFile(result.JSONPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("json has %d rows want 2", len(decoded))
	}
	if decoded[0]["name"] != "Juan Pérez" {
		t.Fatalf("json name %v", decoded[0]["name"])
	}
	if decoded[1]["email"] != nil {
		t.Fatalf("json email %v want null", decoded[1]["email"])
	}

	f, err := os.Open(result.CSVPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("csv has %d lines want 3", len(records))
	}
	if records[0][0] != "doctorId" || records[0][2] != "email" {
		t.Fatalf("csv header %v", records[0])
	}
	if records[2][2] != "" {
		t.Fatalf("nil cell rendered as %q", records[2][2])
	}

	book, err := excelize.OpenFile(result.XLSXPath)
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()
	sheetRows, err := book.GetRows(book.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheetRows) != 3 {
		t.Fatalf("xlsx has %d rows want 3", len(sheetRows))
	}
	if sheetRows[1][1] != "Juan Pérez" {
		t.Fatalf("xlsx cell %q", sheetRows[1][1])
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "string", input: "hola", want: "hola"},
		{name: "float", input: 18.47, want: "18.47"},
		{name: "int", input: 3, want: "3"},
		{name: "bool", input: true, want: "true"},
		{name: "structured", input: map[string]string{"city": "Santo Domingo"}, want: `{"city":"Santo Domingo"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cellString(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
