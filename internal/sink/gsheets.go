package sink

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"vmexport/internal/export"
)

// statusSheetName is the reserved tab recording the last successful run.
const statusSheetName = "Status"

// minSheetRows is the minimum row count a newly created remote sheet gets.
const minSheetRows = 1000

// SheetsSink upserts sheets by name into one Google spreadsheet and stamps
// the Status tab after a successful write. Each sheet is written with a
// single bulk values update: per-cell updates are prohibitively slow against
// the quota-limited API.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	runID         string
}

// NewSheetsSink builds a sink writing to the given spreadsheet with service
// account credentials.
func NewSheetsSink(ctx context.Context, credentialsPath, spreadsheetID, runID string) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSink{svc: svc, spreadsheetID: spreadsheetID, runID: runID}, nil
}

func (s *SheetsSink) Write(ctx context.Context, shts []export.Sheet) error {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to load spreadsheet: %w", err)
	}
	existing := make(map[string]bool, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		existing[sh.Properties.Title] = true
	}

	for _, sheet := range shts {
		if err := s.upsert(ctx, sheet, existing[sheet.Name]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		cols := 0
		if len(sheet.Rows) > 0 {
			cols = len(sheet.Rows[0])
		}
		log.Printf("[sink] updated sheet %q (%d rows, %d cols)", sheet.Name, len(sheet.Rows), cols)
	}

	return s.stamp(ctx, existing[statusSheetName])
}

// upsert clears an existing remote sheet or creates one sized for the data,
// then writes all rows in one request anchored at A1.
func (s *SheetsSink) upsert(ctx context.Context, sheet export.Sheet, exists bool) error {
	if exists {
		_, err := s.svc.Spreadsheets.Values.
			Clear(s.spreadsheetID, quoteRange(sheet.Name), &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to clear: %w", err)
		}
	} else {
		rows := len(sheet.Rows)
		if rows < minSheetRows {
			rows = minSheetRows
		}
		cols := 1
		if len(sheet.Rows) > 0 && len(sheet.Rows[0]) > cols {
			cols = len(sheet.Rows[0])
		}
		if err := s.addSheet(ctx, sheet.Name, int64(rows), int64(cols)); err != nil {
			return err
		}
	}

	values := make([][]interface{}, len(sheet.Rows))
	for i, row := range sheet.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, quoteRange(sheet.Name)+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}
	return nil
}

func (s *SheetsSink) addSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create: %w", err)
	}
	return nil
}

// stamp records the completed run's timestamp and id in the Status tab.
func (s *SheetsSink) stamp(ctx context.Context, exists bool) error {
	if !exists {
		if err := s.addSheet(ctx, statusSheetName, 10, 2); err != nil {
			return fmt.Errorf("status sheet: %w", err)
		}
	}
	values := [][]interface{}{{time.Now().UTC().Format(time.RFC3339), s.runID}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, statusSheetName+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to stamp status sheet: %w", err)
	}
	return nil
}

// quoteRange wraps a sheet name for A1 notation. Embedded apostrophes are
// doubled; sheet-name sanitizing does not strip them, so a name like
// "1_L'Ouest" would otherwise produce an unbalanced range.
func quoteRange(sheetName string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
}
