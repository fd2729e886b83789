package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"foliogate/internal/moneyfmt"
)

const sheetName = "Transactions"

// numFmtTwoDecimals is the built-in "#,##0.00" format.
const numFmtTwoDecimals = 4

// WriteXLSX writes rows as a single-sheet workbook. Quantities, prices and
// amounts are stored as numbers so they can be summed in a spreadsheet.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	for c, name := range columns {
		if err := setCell(f, c+1, 1, name); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range rows {
		r := &rows[i]
		line := i + 2
		values := []any{
			r.ID,
			r.Date,
			r.Symbol,
			r.TradeType,
			r.Quantity.InexactFloat64(),
			r.Price.InexactFloat64(),
			r.Amount.InexactFloat64(),
			r.Currency,
			moneyfmt.Format(r.Amount, r.Currency),
			r.Broker,
			r.Exchange,
			r.Notes,
			r.CreatedAt,
		}
		for c, v := range values {
			if err := setCell(f, c+1, line, v); err != nil {
				return err
			}
		}
	}

	if len(rows) > 0 {
		from, _ := excelize.CoordinatesToCellName(6, 2)
		to, _ := excelize.CoordinatesToCellName(7, len(rows)+1)
		if err := f.SetCellStyle(sheetName, from, to, amountStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "M", 16); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, cell, v); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
