package internal

import (
	"testing"
	"time"
)

func TestReactivateDue(t *testing.T) {
	paidDay := NewDate(2024, time.January, 1)
	due := NewDate(2024, time.January, 1)

	tests := []struct {
		name        string
		expense     Expense
		now         time.Time
		wantChanged bool
	}{
		{
			name:        "recurring paid exactly one cycle ago",
			expense:     paidOn(newExpense("Gym", "100", due, KindRecurring), paidDay),
			now:         time.Date(2024, time.January, 26, 9, 0, 0, 0, time.Local),
			wantChanged: true,
		},
		{
			name:        "recurring paid one day short of a cycle",
			expense:     paidOn(newExpense("Gym", "100", due, KindRecurring), paidDay),
			now:         time.Date(2024, time.January, 25, 23, 59, 0, 0, time.Local),
			wantChanged: false,
		},
		{
			name:        "recurring paid long ago",
			expense:     paidOn(newExpense("Gym", "100", due, KindRecurring), paidDay),
			now:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local),
			wantChanged: true,
		},
		{
			name:        "single paid long ago",
			expense:     paidOn(newExpense("TV", "2000", due, KindSingle), paidDay),
			now:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local),
			wantChanged: false,
		},
		{
			name:        "recurring unpaid",
			expense:     newExpense("Gym", "100", due, KindRecurring),
			now:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local),
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := []Expense{tt.expense}
			got := ReactivateDue(expenses, tt.now, DefaultCycleDays)

			if !tt.wantChanged {
				if len(got) != 0 {
					t.Fatalf("reactivated %d, want none", len(got))
				}
				if !expenses[0].SameAs(tt.expense) {
					t.Errorf("expense changed: %+v", expenses[0])
				}
				return
			}

			if len(got) != 1 {
				t.Fatalf("reactivated %d, want 1", len(got))
			}
			e := expenses[0]
			if e.Paid {
				t.Error("expected unpaid")
			}
			if !e.PaidDate.IsEmpty() {
				t.Errorf("paid date = %v, want empty", e.PaidDate)
			}
			if want := tt.expense.DueDate.AddDays(DefaultCycleDays); !e.DueDate.Equal(want) {
				t.Errorf("due date = %v, want %v", e.DueDate, want)
			}
			if !got[0].SameAs(e) {
				t.Errorf("returned %+v, stored %+v", got[0], e)
			}
		})
	}
}

func TestReactivateDue_GymScenario(t *testing.T) {
	gym := newExpense("Gym", "100.00", NewDate(2024, 1, 1), KindRecurring)
	gym.MarkPaid(NewDate(2024, 1, 1))
	expenses := []Expense{gym}

	ReactivateDue(expenses, time.Date(2024, 1, 26, 12, 0, 0, 0, time.UTC), DefaultCycleDays)

	got := expenses[0]
	if got.Paid || !got.PaidDate.IsEmpty() {
		t.Fatalf("expected unpaid with no paid date, got %+v", got)
	}
	if got.DueDate.StorageString() != "2024-01-26" {
		t.Errorf("due date = %s, want 2024-01-26", got.DueDate.StorageString())
	}
	if err := got.Validate(); err != nil {
		t.Errorf("reactivated expense invalid: %v", err)
	}
}

func TestReactivateDue_CustomCycle(t *testing.T) {
	e := paidOn(newExpense("Internet", "120", NewDate(2024, 1, 10), KindRecurring), NewDate(2024, 1, 10))
	expenses := []Expense{e}

	if got := ReactivateDue(expenses, time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC), 30); len(got) != 0 {
		t.Fatalf("reactivated after 29 days with a 30 day cycle")
	}
	if got := ReactivateDue(expenses, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), 30); len(got) != 1 {
		t.Fatalf("not reactivated after 30 days with a 30 day cycle")
	}
	if expenses[0].DueDate.StorageString() != "2024-02-09" {
		t.Errorf("due date = %s, want 2024-02-09", expenses[0].DueDate.StorageString())
	}
}
