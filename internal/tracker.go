package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	applog "github.com/gigurra/expense-tracker/internal/log"
)

// Options configures a Tracker.
type Options struct {
	CycleDays int              // recurrence cycle, DefaultCycleDays when zero
	Currency  Currency         // used to render and re-parse amounts
	Now       func() time.Time // clock, time.Now when nil
	Logger    *applog.Logger
}

// Tracker owns the expense store and its repository. Every mutation is
// validated, applied in memory and then saved; when the save fails the store
// is rolled back so memory and storage never disagree.
type Tracker struct {
	store     *Store
	repo      Repository
	cycleDays int
	currency  Currency
	now       func() time.Time
	logger    *applog.Logger
}

// AddInput is an expense as typed by the user.
type AddInput struct {
	Name    string
	Amount  string // decimal, dot or comma separator
	DueDate string // dd/mm/yyyy
	Kind    string // "Única"/"Recorrente" (or single/recurring); empty means single
}

// Open hydrates a tracker from repo and runs the recurrence pass once,
// saving if any expense was reactivated.
func Open(ctx context.Context, repo Repository, opts Options) (*Tracker, error) {
	t := &Tracker{
		repo:      repo,
		cycleDays: opts.CycleDays,
		currency:  opts.Currency,
		now:       opts.Now,
		logger:    opts.Logger,
	}
	if t.cycleDays <= 0 {
		t.cycleDays = DefaultCycleDays
	}
	if t.currency.Code == "" {
		t.currency = GetCurrency(DefaultCurrency)
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.logger == nil {
		t.logger = applog.Default()
	}
	t.logger = t.logger.WithComponent(applog.ComponentTracker)

	expenses, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	store, err := NewStore(expenses)
	if err != nil {
		return nil, &CorruptDataError{Source: "expenses", Err: err}
	}
	t.store = store
	t.logger.DebugContext(ctx, "Loaded expenses", applog.FieldCount, store.Len())

	if _, err := t.reactivateDue(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Close closes the repository.
func (t *Tracker) Close() error {
	return t.repo.Close()
}

// Currency returns the currency amounts are rendered with.
func (t *Tracker) Currency() Currency {
	return t.currency
}

// Today returns the current calendar day.
func (t *Tracker) Today() Date {
	return DateOf(t.now())
}

// Expenses returns a copy of all expenses in insertion order.
func (t *Tracker) Expenses() []Expense {
	return t.store.All()
}

func (t *Tracker) reactivateDue(ctx context.Context) ([]Expense, error) {
	var reactivated []Expense
	err := t.mutate(ctx, applog.OpReactivate, func(s *Store) error {
		all := s.All()
		reactivated = ReactivateDue(all, t.now(), t.cycleDays)
		if len(reactivated) == 0 {
			return errNoChange
		}
		s.replaceAll(all)
		return nil
	})
	if err != nil {
		return nil, err
	}
	recLog := t.logger.WithComponent(applog.ComponentRecurrence)
	for _, e := range reactivated {
		recLog.InfoContext(ctx, "Reactivated recurring expense",
			applog.FieldExpenseID, e.ID,
			applog.FieldExpenseName, e.Name,
			applog.FieldDueDate, e.DueDate.String(),
			applog.FieldCycleDays, t.cycleDays)
	}
	return reactivated, nil
}

// Add validates the input and appends a new unpaid expense.
func (t *Tracker) Add(ctx context.Context, in AddInput) (Expense, error) {
	e, err := t.parseInput(in)
	if err != nil {
		return Expense{}, err
	}
	var added Expense
	err = t.mutate(ctx, applog.OpAdd, func(s *Store) error {
		added = s.Add(e)
		return nil
	})
	if err != nil {
		return Expense{}, err
	}
	t.logger.InfoContext(ctx, "Expense added",
		applog.FieldExpenseID, added.ID,
		applog.FieldExpenseName, added.Name,
		applog.FieldAmount, FixedAmount(added.Amount),
		applog.FieldDueDate, added.DueDate.String(),
		applog.FieldKind, added.Kind.String())
	return added, nil
}

// Pay marks the selected expense as paid today.
func (t *Tracker) Pay(ctx context.Context, sel Selection) (Expense, error) {
	var paid Expense
	err := t.mutate(ctx, applog.OpPay, func(s *Store) error {
		e, err := t.resolve(s, sel)
		if err != nil {
			return err
		}
		if e.Paid {
			return validationErr("selection", "%q is already paid", e.Name)
		}
		e.MarkPaid(t.Today())
		if err := s.Update(e); err != nil {
			return err
		}
		paid = e
		return nil
	})
	if err != nil {
		return Expense{}, err
	}
	t.logger.InfoContext(ctx, "Expense paid",
		applog.FieldExpenseID, paid.ID,
		applog.FieldExpenseName, paid.Name,
		applog.FieldPaidDate, paid.PaidDate.String())
	return paid, nil
}

// Remove deletes the selected expense, paid or not.
func (t *Tracker) Remove(ctx context.Context, sel Selection) (Expense, error) {
	var removed Expense
	err := t.mutate(ctx, applog.OpRemove, func(s *Store) error {
		e, err := t.resolve(s, sel)
		if err != nil {
			return err
		}
		if err := s.Remove(e); err != nil {
			return err
		}
		removed = e
		return nil
	})
	if err != nil {
		return Expense{}, err
	}
	t.logger.InfoContext(ctx, "Expense removed",
		applog.FieldExpenseID, removed.ID,
		applog.FieldExpenseName, removed.Name)
	return removed, nil
}

// Unpaid returns the unpaid view sorted by due date, with its total.
func (t *Tracker) Unpaid() View {
	return BuildView("Unpaid", UnpaidSorted(t.store.All()), t.currency)
}

// Paid returns the paid view sorted by due date, with its total.
func (t *Tracker) Paid() View {
	return BuildView("Paid", PaidSorted(t.store.All()), t.currency)
}

// DueToday returns the unpaid expenses due today, or ErrNothingDue.
func (t *Tracker) DueToday() (View, error) {
	due, err := DueToday(t.store.All(), t.Today())
	if err != nil {
		return BuildView("Due today", nil, t.currency), err
	}
	return BuildView("Due today", due, t.currency), nil
}

// errNoChange lets a mutation report that nothing needs saving.
var errNoChange = errors.New("no change")

// mutate applies fn to the store and saves the result. If fn fails, or the
// save fails, the store is restored to its previous state.
func (t *Tracker) mutate(ctx context.Context, op string, fn func(*Store) error) error {
	snap := t.store.Snapshot()
	if err := fn(t.store); err != nil {
		t.store.Restore(snap)
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	if err := t.repo.Save(ctx, t.store.All()); err != nil {
		t.store.Restore(snap)
		t.logger.ErrorContext(ctx, "Saving expenses failed",
			applog.FieldOperation, op,
			applog.FieldError, err)
		return fmt.Errorf("saving expenses: %w", err)
	}
	return nil
}

func (t *Tracker) resolve(s *Store, sel Selection) (Expense, error) {
	match, err := sel.Matcher(t.currency)
	if err != nil {
		return Expense{}, err
	}
	e, ok := s.FindOne(match)
	if !ok {
		return Expense{}, &NotFoundError{Reason: fmt.Sprintf("no expense matches %s", sel)}
	}
	return e, nil
}

func (t *Tracker) parseInput(in AddInput) (Expense, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Expense{}, validationErr("name", "must not be empty")
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Expense{}, validationErr("amount", "%q is not a valid positive amount", in.Amount)
	}
	due, err := ParseDisplayDate(in.DueDate)
	if err != nil {
		return Expense{}, validationErr("due date", "%q must be in dd/mm/yyyy format", in.DueDate)
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		Name:    name,
		Amount:  amount,
		DueDate: due,
		Kind:    kind,
	}, nil
}
