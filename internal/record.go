package internal

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is the durable form of an expense. Field names follow the data file
// written by earlier versions so existing files keep loading.
type Record struct {
	ID       int64       `json:"id,omitempty"`
	Name     string      `json:"nome"`
	Amount   json.Number `json:"valor"`
	DueDate  string      `json:"vencimento"`
	Kind     string      `json:"tipo"`
	Paid     bool        `json:"paga"`
	PaidDate *string     `json:"data_pagamento"`
}

// ToRecord converts an expense for storage. Dates use YYYY-MM-DD and an
// absent paid date becomes null.
func ToRecord(e Expense) Record {
	r := Record{
		ID:      e.ID,
		Name:    e.Name,
		Amount:  json.Number(e.Amount.String()),
		DueDate: e.DueDate.StorageString(),
		Kind:    e.Kind.String(),
		Paid:    e.Paid,
	}
	if !e.PaidDate.IsEmpty() {
		s := e.PaidDate.StorageString()
		r.PaidDate = &s
	}
	return r
}

// ToExpense converts a stored record back, checking every invariant.
func (r Record) ToExpense() (Expense, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return Expense{}, fmt.Errorf("parsing amount %q: %w", r.Amount, err)
	}
	due, err := ParseStorageDate(r.DueDate)
	if err != nil {
		return Expense{}, fmt.Errorf("vencimento: %w", err)
	}
	kind := Kind(r.Kind)
	if !kind.IsValid() {
		return Expense{}, fmt.Errorf("unknown tipo %q", r.Kind)
	}
	if r.ID < 0 {
		return Expense{}, fmt.Errorf("negative id %d", r.ID)
	}

	e := Expense{
		ID:      r.ID,
		Name:    r.Name,
		Amount:  amount,
		DueDate: due,
		Kind:    kind,
		Paid:    r.Paid,
	}
	if r.PaidDate != nil {
		paid, err := ParseStorageDate(*r.PaidDate)
		if err != nil {
			return Expense{}, fmt.Errorf("data_pagamento: %w", err)
		}
		e.PaidDate = paid
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// ToRecords converts a collection for storage.
func ToRecords(expenses []Expense) []Record {
	records := make([]Record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, ToRecord(e))
	}
	return records
}

// FromRecords converts stored records back, wrapping the first failure in a
// *CorruptDataError that names source and position.
func FromRecords(source string, records []Record) ([]Expense, error) {
	expenses := make([]Expense, 0, len(records))
	seen := make(map[int64]bool)
	for i, r := range records {
		e, err := r.ToExpense()
		if err != nil {
			return nil, &CorruptDataError{Source: source, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		if e.ID != 0 {
			if seen[e.ID] {
				return nil, &CorruptDataError{Source: source, Err: fmt.Errorf("record %d: duplicate id %d", i, e.ID)}
			}
			seen[e.ID] = true
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}
