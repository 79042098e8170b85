package internal

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Views never mutate the expenses they are given.

// UnpaidSorted returns the unpaid expenses ordered by due date. Ties keep
// insertion order.
func UnpaidSorted(expenses []Expense) []Expense {
	return sortedByDueDate(filter(expenses, func(e Expense) bool { return !e.Paid }))
}

// PaidSorted returns the paid expenses ordered by due date. Ties keep
// insertion order.
func PaidSorted(expenses []Expense) []Expense {
	return sortedByDueDate(filter(expenses, func(e Expense) bool { return e.Paid }))
}

// DueToday returns the unpaid expenses due on today, in insertion order.
// It returns ErrNothingDue when there are none.
func DueToday(expenses []Expense, today Date) ([]Expense, error) {
	due := filter(expenses, func(e Expense) bool {
		return !e.Paid && e.DueDate.Equal(today)
	})
	if len(due) == 0 {
		return nil, ErrNothingDue
	}
	return due, nil
}

// Total sums the amounts of exactly the expenses given.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func filter(expenses []Expense, keep func(Expense) bool) []Expense {
	var out []Expense
	for _, e := range expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func sortedByDueDate(expenses []Expense) []Expense {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].DueDate.Before(expenses[j].DueDate)
	})
	return expenses
}

// Row is an expense as shown to the user.
type Row struct {
	ID      int64
	Name    string
	Amount  string // currency formatted, e.g. "R$1500.00"
	DueDate string // dd/mm/yyyy
	Kind    string
	Paid    bool
	PaidOn  string // dd/mm/yyyy, empty when unpaid
}

// View is a rendered list of expenses with the total of exactly those rows.
type View struct {
	Title     string
	Expenses  []Expense
	Rows      []Row
	Total     decimal.Decimal
	TotalText string // currency formatted
}

// BuildView renders expenses into rows using the given currency.
func BuildView(title string, expenses []Expense, cur Currency) View {
	total := Total(expenses)
	v := View{
		Title:     title,
		Expenses:  expenses,
		Rows:      make([]Row, 0, len(expenses)),
		Total:     total,
		TotalText: cur.Format(total),
	}
	for _, e := range expenses {
		v.Rows = append(v.Rows, ToRow(e, cur))
	}
	return v
}

// ToRow renders a single expense.
func ToRow(e Expense, cur Currency) Row {
	r := Row{
		ID:      e.ID,
		Name:    e.Name,
		Amount:  cur.Format(e.Amount),
		DueDate: e.DueDate.DisplayString(),
		Kind:    e.Kind.String(),
		Paid:    e.Paid,
	}
	if !e.PaidDate.IsEmpty() {
		r.PaidOn = e.PaidDate.DisplayString()
	}
	return r
}
