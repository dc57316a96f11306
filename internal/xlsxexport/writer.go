// Package xlsxexport renders document batches as Excel workbooks. It
// shares the column layout with csvexport so the two export formats never
// drift apart.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docuparse/internal/csvexport"
	"docuparse/internal/domain"
)

const sheetName = "Documents"

// Write renders the documents as a single-sheet workbook on w.
func Write(w io.Writer, docs []domain.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeRow(f, 1, csvexport.Columns); err != nil {
		return err
	}
	for i := range docs {
		if err := writeRow(f, i+2, csvexport.DocumentToRow(&docs[i])); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
