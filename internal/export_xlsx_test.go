package internal

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	brl := GetCurrency("BRL")
	in := sampleExpenses()
	for i := range in {
		in[i].ID = int64(i + 1)
	}
	path := filepath.Join(t.TempDir(), "despesas.xlsx")

	err := ExportXLSX(path,
		BuildView(SheetUnpaid, UnpaidSorted(in), brl),
		BuildView(SheetPaid, PaidSorted(in), brl))
	if err != nil {
		t.Fatalf("ExportXLSX error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetUnpaid || sheets[1] != SheetPaid {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows(SheetUnpaid)
	if err != nil {
		t.Fatal(err)
	}
	// header + 3 expenses + total
	if len(rows) != 5 {
		t.Fatalf("unpaid rows = %d, want 5: %v", len(rows), rows)
	}
	if rows[0][1] != "Name" || rows[1][1] != "Rent" || rows[1][3] != "01/03/2024" {
		t.Errorf("unpaid rows = %v", rows)
	}
	if rows[1][2] != "1500.00" {
		t.Errorf("amount cell = %q, want 1500.00", rows[1][2])
	}
	if rows[4][1] != "Total" || rows[4][2] != "1669.90" {
		t.Errorf("total row = %v", rows[4])
	}

	paid, err := f.GetRows(SheetPaid)
	if err != nil {
		t.Fatal(err)
	}
	if len(paid) != 4 || paid[1][1] != "Gym" || paid[1][5] != "05/01/2024" {
		t.Errorf("paid rows = %v", paid)
	}
}

func TestExportXLSX_NoViews(t *testing.T) {
	if err := ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx")); err == nil {
		t.Fatal("expected error")
	}
}
