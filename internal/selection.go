package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Selection points at one expense, either by its ID or by the four fields a
// rendered row shows (name, amount, due date, kind).
//
// Field matching cannot tell apart two expenses that render identically; the
// first one in collection order wins. Prefer IDs.
type Selection struct {
	ID      int64
	Name    string
	Amount  string // as rendered, e.g. "R$1500.00"
	DueDate string // dd/mm/yyyy
	Kind    string
}

// SelectRow builds a field selection from a rendered row.
func SelectRow(r Row) Selection {
	return Selection{Name: r.Name, Amount: r.Amount, DueDate: r.DueDate, Kind: r.Kind}
}

// IsEmpty returns true when nothing was selected.
func (s Selection) IsEmpty() bool {
	return s.ID == 0 &&
		strings.TrimSpace(s.Name) == "" &&
		strings.TrimSpace(s.Amount) == "" &&
		strings.TrimSpace(s.DueDate) == "" &&
		strings.TrimSpace(s.Kind) == ""
}

// Matcher returns the predicate that resolves this selection against the
// store. Rendered fields are parsed back (amount through the currency, due
// date from dd/mm/yyyy) and must all be present.
func (s Selection) Matcher(cur Currency) (func(Expense) bool, error) {
	if s.IsEmpty() {
		return nil, &NotFoundError{Reason: "no expense selected"}
	}
	if s.ID != 0 {
		id := s.ID
		return func(e Expense) bool { return e.ID == id }, nil
	}

	if strings.TrimSpace(s.Name) == "" {
		return nil, validationErr("name", "must not be empty")
	}
	amount, err := cur.Parse(s.Amount)
	if err != nil {
		return nil, validationErr("amount", "%q is not a valid amount", s.Amount)
	}
	due, err := ParseDisplayDate(s.DueDate)
	if err != nil {
		return nil, validationErr("due date", "%q must be in dd/mm/yyyy format", s.DueDate)
	}
	if strings.TrimSpace(s.Kind) == "" {
		return nil, validationErr("kind", "must not be empty")
	}
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(s.Name)
	return func(e Expense) bool {
		return e.Name == name &&
			amountsEqual(e.Amount, amount) &&
			e.DueDate.Equal(due) &&
			e.Kind == kind
	}, nil
}

func (s Selection) String() string {
	if s.ID != 0 {
		return fmt.Sprintf("#%d", s.ID)
	}
	return fmt.Sprintf("%s %s %s %s", s.Name, s.Amount, s.DueDate, s.Kind)
}

// amountsEqual compares at display precision.
func amountsEqual(a, b decimal.Decimal) bool {
	return a.Round(AmountPlaces).Equal(b.Round(AmountPlaces))
}
