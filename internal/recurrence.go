package internal

import "time"

// DefaultCycleDays is how long a paid recurring expense stays paid before it
// becomes due again.
const DefaultCycleDays = 25

// IsDueForReactivation returns true if a paid recurring expense has been paid
// at least cycleDays calendar days before today.
func IsDueForReactivation(e Expense, today Date, cycleDays int) bool {
	if e.Kind != KindRecurring || !e.Paid || e.PaidDate.IsEmpty() {
		return false
	}
	return today.DaysSince(e.PaidDate) >= cycleDays
}

// Reactivate returns e back in the unpaid state with its due date advanced by
// one cycle.
func Reactivate(e Expense, cycleDays int) Expense {
	e.Paid = false
	e.PaidDate = Date{}
	e.DueDate = e.DueDate.AddDays(cycleDays)
	return e
}

// ReactivateDue scans expenses in place and reactivates every paid recurring
// expense whose cycle has elapsed at now. Single and unpaid expenses are never
// touched. Returns the reactivated expenses in collection order.
func ReactivateDue(expenses []Expense, now time.Time, cycleDays int) []Expense {
	today := DateOf(now)
	var reactivated []Expense
	for i := range expenses {
		if !IsDueForReactivation(expenses[i], today, cycleDays) {
			continue
		}
		expenses[i] = Reactivate(expenses[i], cycleDays)
		reactivated = append(reactivated, expenses[i])
	}
	return reactivated
}
