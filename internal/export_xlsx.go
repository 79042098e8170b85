package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX
const (
	SheetUnpaid = "Unpaid"
	SheetPaid   = "Paid"
)

var exportHeader = []any{"ID", "Name", "Amount", "Due", "Kind", "Paid on"}

// ExportXLSX writes the given views to an Excel workbook, one sheet per view,
// each ending with a total row. Amounts are numeric cells formatted with two
// decimals; dates are dd/mm/yyyy text as shown in the tables.
func ExportXLSX(path string, views ...View) error {
	if len(views) == 0 {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	first := f.GetSheetName(0)
	for i, v := range views {
		sheet := v.Title
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return fmt.Errorf("naming sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		if err := writeViewSheet(f, sheet, v, amountStyle, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeViewSheet(f *excelize.File, sheet string, v View, amountStyle, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for i, e := range v.Expenses {
		r := v.Rows[i]
		cells := []any{e.ID, e.Name, e.Amount.InexactFloat64(), r.DueDate, r.Kind, r.PaidOn}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	totalRow := []any{"", "Total", v.Total.InexactFloat64()}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &totalRow); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), headerStyle); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}
	if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", row), amountStyle); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}

	if err := f.SetColWidth(sheet, "B", "B", 30); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return f.SetColWidth(sheet, "C", "F", 14)
}
