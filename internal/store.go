package internal

import "fmt"

// Store is the in-memory expense collection and the single source of truth
// during a session. It is not safe for concurrent use.
type Store struct {
	items  []Expense
	nextID int64
}

// NewStore creates a store hydrated with expenses in the given order.
// Expenses without an ID get one assigned after the highest existing ID.
func NewStore(expenses []Expense) (*Store, error) {
	s := &Store{nextID: 1}
	seen := make(map[int64]bool)
	for _, e := range expenses {
		if e.ID == 0 {
			continue
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate expense id %d", e.ID)
		}
		seen[e.ID] = true
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	s.items = make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		s.Add(e)
	}
	return s, nil
}

// Add appends the expense without any dedup check and returns it with its ID.
func (s *Store) Add(e Expense) Expense {
	if e.ID == 0 {
		e.ID = s.nextID
	}
	if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	s.items = append(s.items, e)
	return e
}

// Remove deletes the first entry structurally identical to e.
func (s *Store) Remove(e Expense) error {
	for i, item := range s.items {
		if item.SameAs(e) {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Reason: fmt.Sprintf("expense %q not found", e.Name)}
}

// Update replaces the entry that has the same ID as e.
func (s *Store) Update(e Expense) error {
	for i := range s.items {
		if s.items[i].ID == e.ID {
			s.items[i] = e
			return nil
		}
	}
	return &NotFoundError{Reason: fmt.Sprintf("expense #%d not found", e.ID)}
}

// FindOne returns the first expense matching the predicate.
func (s *Store) FindOne(match func(Expense) bool) (Expense, bool) {
	for _, e := range s.items {
		if match(e) {
			return e, true
		}
	}
	return Expense{}, false
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Expense {
	out := make([]Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of expenses.
func (s *Store) Len() int {
	return len(s.items)
}

// StoreSnapshot captures store state for Restore.
type StoreSnapshot struct {
	items  []Expense
	nextID int64
}

// Snapshot captures the current state.
func (s *Store) Snapshot() StoreSnapshot {
	return StoreSnapshot{items: s.All(), nextID: s.nextID}
}

// Restore puts the store back to a previously captured state.
func (s *Store) Restore(snap StoreSnapshot) {
	s.items = snap.items
	s.nextID = snap.nextID
}

// replaceAll swaps the whole collection, used after in-place recurrence passes.
func (s *Store) replaceAll(expenses []Expense) {
	s.items = expenses
}
