package sink

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"vmexport/internal/export"
)

// ExcelSink writes one timestamped workbook per run under the export root,
// one worksheet per sheet, all cells as strings.
type ExcelSink struct {
	Root     string
	Basename string
}

func (s *ExcelSink) Write(ctx context.Context, sheets []export.Sheet) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("Warning: error closing workbook:", err)
		}
	}()

	for i, sheet := range sheets {
		if i == 0 {
			// The new workbook starts with one default sheet; rename it
			// instead of leaving an empty tab behind.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
			}
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of sheet %s: %w", r+1, sheet.Name, err)
			}
		}
	}

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create export root: %w", err)
	}
	path := filepath.Join(s.Root, fmt.Sprintf("%s_%s.xlsx", s.Basename, time.Now().Format("2006-01-02_15-04")))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[sink] wrote workbook %s (%d sheets)", path, len(sheets))
	return nil
}
