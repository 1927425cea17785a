// Package translate outsources machine translation of a scraped table
// to Google Sheets: every text cell is uploaded as a GOOGLETRANSLATE
// formula and the sheet is polled until no cell is still loading.
package translate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mario-agban/CarpeMed/internal/config"
)

// loadingSentinel is what Sheets renders while a GOOGLETRANSLATE
// formula is still evaluating.
const loadingSentinel = "Loading..."

type Translator struct {
	svc           *sheets.Service
	spreadsheetID string
	pollInterval  time.Duration
}

func New(ctx context.Context, cfg config.Config) (*Translator, error) {
	if err := cfg.Require("SHEETS_CREDENTIALS_FILE", cfg.SheetsCredentialsFile); err != nil {
		return nil, err
	}
	if err := cfg.Require("TRANSLATION_SHEET_ID", cfg.TranslationSheetID); err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(cfg.SheetsCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(blob, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &Translator{
		svc:           svc,
		spreadsheetID: cfg.TranslationSheetID,
		pollInterval:  time.Duration(cfg.TranslatePollSec) * time.Second,
	}, nil
}

// TranslateTable uploads a worksheet named after the source, replaces
// every non-empty data cell with a GOOGLETRANSLATE formula, waits until
// no cell still reads the loading sentinel, and returns the translated
// data rows.
func (t *Translator) TranslateTable(ctx context.Context, name string, header []string, rows [][]string) ([][]string, error) {
	if _, err := t.recreateWorksheet(ctx, name); err != nil {
		return nil, err
	}

	grid := make([][]any, 0, len(rows)+1)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	grid = append(grid, headerRow)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = translationFormula(cell)
		}
		grid = append(grid, cells)
	}

	valueRange := &sheets.ValueRange{Values: grid}
	_, err := t.svc.Spreadsheets.Values.
		Update(t.spreadsheetID, quoteRange(name), valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("upload worksheet %s: %w", name, err)
	}

	for {
		values, err := t.readWorksheet(ctx, name)
		if err != nil {
			return nil, err
		}
		if !stillLoading(values) {
			if len(values) <= 1 {
				return nil, nil
			}
			return values[1:], nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.pollInterval):
		}
	}
}

// recreateWorksheet drops any worksheet with the same title before
// adding a fresh one, so repeated runs replace stale translations.
func (t *Translator) recreateWorksheet(ctx context.Context, title string) (int64, error) {
	spreadsheet, err := t.svc.Spreadsheets.Get(t.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("open translation spreadsheet: %w", err)
	}

	var requests []*sheets.Request
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			requests = append(requests, &sheets.Request{
				DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheet.Properties.SheetId},
			})
		}
	}
	requests = append(requests, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	})

	resp, err := t.svc.Spreadsheets.BatchUpdate(t.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("recreate worksheet %s: %w", title, err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			return reply.AddSheet.Properties.SheetId, nil
		}
	}
	return 0, nil
}

func (t *Translator) readWorksheet(ctx context.Context, name string) ([][]string, error) {
	resp, err := t.svc.Spreadsheets.Values.
		Get(t.spreadsheetID, quoteRange(name)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}

	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

func translationFormula(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	// Double quotes would terminate the formula argument.
	escaped := strings.ReplaceAll(trimmed, `"`, "")
	return fmt.Sprintf(`=GOOGLETRANSLATE("%s")`, escaped)
}

func stillLoading(values [][]string) bool {
	for _, row := range values {
		for _, cell := range row {
			if cell == loadingSentinel {
				return true
			}
		}
	}
	return false
}

func quoteRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
