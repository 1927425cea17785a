// Package export writes assembled datasets to dated, country-named
// files under a date-stamped export directory.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Result lists the files one export produced.
type Result struct {
	JSONPath string
	CSVPath  string
	XLSXPath string
}

// Save writes the reindexed rows in all three formats under
// <exportDir>/<MMDDYY>/<name>_<MMDDYY>.{json,csv,xlsx}. Any write
// failure aborts the export; a partially written dataset is worse than
// a failed run.
func Save(exportDir, name string, fields []string, rows []map[string]any) (Result, error) {
	stamp := time.Now().UTC().Format("010206")
	dir := filepath.Join(exportDir, stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", name, stamp))
	result := Result{
		JSONPath: base + ".json",
		CSVPath:  base + ".csv",
		XLSXPath: base + ".xlsx",
	}

	if err := saveJSON(result.JSONPath, rows); err != nil {
		return Result{}, err
	}
	if err := saveCSV(result.CSVPath, fields, rows); err != nil {
		return Result{}, err
	}
	if err := saveXLSX(result.XLSXPath, fields, rows); err != nil {
		return Result{}, err
	}
	return result, nil
}

func saveJSON(path string, rows []map[string]any) error {
	blob, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

func saveCSV(path string, fields []string, rows []map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(fields))
		for i, field := range fields {
			record[i] = cellString(row[field])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func saveXLSX(path string, fields []string, rows []map[string]any) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, field := range fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, field)
	}
	for r, row := range rows {
		for i, field := range fields {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			_ = f.SetCellValue(sheet, cell, cellString(row[field]))
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

// cellString flattens any reindexed value for the tabular formats.
// Structured values (education entries, the joined location) render as
// their JSON form.
func cellString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		blob, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(blob)
	}
}
