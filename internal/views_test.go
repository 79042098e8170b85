package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleExpenses() []Expense {
	return []Expense{
		newExpense("Internet", "120.00", NewDate(2024, time.March, 10), KindRecurring),
		paidOn(newExpense("Water", "80.50", NewDate(2024, time.February, 20), KindSingle), NewDate(2024, time.February, 19)),
		newExpense("Rent", "1500.00", NewDate(2024, time.March, 1), KindSingle),
		newExpense("Phone", "49.90", NewDate(2024, time.March, 1), KindRecurring),
		paidOn(newExpense("Gym", "100.00", NewDate(2024, time.January, 1), KindRecurring), NewDate(2024, time.January, 5)),
	}
}

func names(expenses []Expense) []string {
	var out []string
	for _, e := range expenses {
		out = append(out, e.Name)
	}
	return out
}

func assertNames(t *testing.T, got []Expense, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestUnpaidSorted(t *testing.T) {
	got := UnpaidSorted(sampleExpenses())
	// Rent and Phone share a due date and keep insertion order
	assertNames(t, got, "Rent", "Phone", "Internet")

	for i := 1; i < len(got); i++ {
		if got[i].DueDate.Before(got[i-1].DueDate) {
			t.Fatalf("not sorted at %d: %v", i, names(got))
		}
	}
}

func TestPaidSorted(t *testing.T) {
	assertNames(t, PaidSorted(sampleExpenses()), "Gym", "Water")
}

func TestViews_DoNotMutateInput(t *testing.T) {
	in := sampleExpenses()
	before := names(in)
	UnpaidSorted(in)
	PaidSorted(in)
	after := names(in)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input reordered: %v -> %v", before, after)
		}
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		want     string
	}{
		{"empty", nil, "0.00"},
		{"unpaid", UnpaidSorted(sampleExpenses()), "1669.90"},
		{"paid", PaidSorted(sampleExpenses()), "180.50"},
		{"all", sampleExpenses(), "1850.40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixedAmount(Total(tt.expenses)); got != tt.want {
				t.Errorf("Total = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotal_MatchesSumOfUnpaid(t *testing.T) {
	in := sampleExpenses()
	want := decimal.Zero
	for _, e := range in {
		if !e.Paid {
			want = want.Add(e.Amount)
		}
	}
	if got := Total(UnpaidSorted(in)); !got.Equal(want) {
		t.Errorf("Total(unpaid) = %s, want %s", got, want)
	}
}

func TestDueToday(t *testing.T) {
	today := NewDate(2024, time.March, 1)
	expenses := []Expense{
		newExpense("Rent", "1500", NewDate(2024, time.March, 1), KindSingle),
		newExpense("Phone", "49.90", NewDate(2024, time.March, 2), KindSingle),
		paidOn(newExpense("Water", "80", NewDate(2024, time.March, 1), KindSingle), today),
	}

	got, err := DueToday(expenses, today)
	if err != nil {
		t.Fatalf("DueToday error: %v", err)
	}
	assertNames(t, got, "Rent")

	_, err = DueToday(expenses, NewDate(2024, time.March, 5))
	if !errors.Is(err, ErrNothingDue) {
		t.Errorf("DueToday with no matches = %v, want ErrNothingDue", err)
	}
}

func TestBuildView(t *testing.T) {
	brl := GetCurrency("BRL")
	v := BuildView("Paid", PaidSorted(sampleExpenses()), brl)

	if len(v.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(v.Rows))
	}
	gym := v.Rows[0]
	if gym.Name != "Gym" || gym.Amount != "R$100.00" || gym.DueDate != "01/01/2024" ||
		gym.Kind != "Recorrente" || gym.PaidOn != "05/01/2024" || !gym.Paid {
		t.Errorf("row = %+v", gym)
	}
	if v.TotalText != "R$180.50" {
		t.Errorf("TotalText = %q, want R$180.50", v.TotalText)
	}
}
