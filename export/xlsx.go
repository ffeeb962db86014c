// Package export writes stored scan runs to spreadsheet files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/storage"
)

var xlsxHeaders = []string{
	"row_index", "name", "price_raw", "price_value", "currency",
	"vat_tag", "confidence", "name_box", "price_box", "source",
}

// RunToXLSX writes one run and its items to an .xlsx workbook at outputPath.
func RunToXLSX(run storage.Run, items []model.Item, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	for col, header := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, item := range items {
		nameBox, err := json.Marshal(item.NameBox)
		if err != nil {
			return err
		}
		priceBox, err := json.Marshal(item.PriceBox)
		if err != nil {
			return err
		}

		var confidence any
		if item.Confidence != nil {
			confidence = *item.Confidence
		}

		values := []any{
			item.RowIndex,
			item.Name,
			item.Price.Raw,
			item.Price.Value,
			item.Price.Currency,
			string(item.Price.VatTag),
			confidence,
			string(nameBox),
			string(priceBox),
			run.Source,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving %s: %w", outputPath, err)
	}
	return nil
}
