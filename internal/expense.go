package internal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tells whether an expense is paid once or comes back every cycle.
// The values are the labels stored in the data file.
type Kind string

const (
	KindSingle    Kind = "Única"
	KindRecurring Kind = "Recorrente"
)

// ParseKind accepts the stored labels (case-insensitive) and their English
// aliases. An empty string means Single.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "única", "unica", "single":
		return KindSingle, nil
	case "recorrente", "recurring":
		return KindRecurring, nil
	default:
		return "", validationErr("kind", "%q must be %q or %q", s, KindSingle, KindRecurring)
	}
}

// IsValid returns true for the two known kinds.
func (k Kind) IsValid() bool {
	return k == KindSingle || k == KindRecurring
}

func (k Kind) String() string {
	return string(k)
}

// Expense is a tracked obligation.
type Expense struct {
	ID       int64
	Name     string
	Amount   decimal.Decimal
	DueDate  Date
	Kind     Kind
	Paid     bool
	PaidDate Date // empty unless Paid
}

// Validate checks the invariants every stored expense must hold.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return validationErr("name", "must not be empty")
	}
	if !e.Amount.IsPositive() {
		return validationErr("amount", "%s must be greater than zero", e.Amount)
	}
	if e.DueDate.IsEmpty() {
		return validationErr("due date", "must be set")
	}
	if !e.Kind.IsValid() {
		return validationErr("kind", "unknown kind %q", e.Kind)
	}
	if e.Paid && e.PaidDate.IsEmpty() {
		return validationErr("paid date", "must be set on a paid expense")
	}
	if !e.Paid && !e.PaidDate.IsEmpty() {
		return validationErr("paid date", "must be empty on an unpaid expense")
	}
	return nil
}

// MarkPaid sets the expense as paid on the given day.
func (e *Expense) MarkPaid(on Date) {
	e.Paid = true
	e.PaidDate = on
}

// SameAs reports structural identity, field by field.
func (e Expense) SameAs(other Expense) bool {
	return e.ID == other.ID &&
		e.Name == other.Name &&
		e.Amount.Equal(other.Amount) &&
		e.DueDate.Equal(other.DueDate) &&
		e.Kind == other.Kind &&
		e.Paid == other.Paid &&
		e.PaidDate.Equal(other.PaidDate)
}
