package workout

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gymkeeper/internal/dates"
)

// Days is a full workout log keyed by day.
type Days map[dates.DayKey][]Entry

// Clone deep-copies d.
func (d Days) Clone() Days {
	out := make(Days, len(d))
	for k, entries := range d {
		cp := make([]Entry, len(entries))
		for i, e := range entries {
			cp[i] = e.Clone()
		}
		out[k] = cp
	}
	return out
}

// Store is the live workout log. Mutations are synchronous; readers get
// copies so a snapshot handed to a background push never aliases it.
type Store struct {
	mu   sync.RWMutex
	days Days
}

func NewStore() *Store {
	return &Store{days: Days{}}
}

// AddExercise appends a new entry to day. An empty name becomes
// "Workout N", N being the day's entry count after the append.
func (s *Store) AddExercise(day dates.DayKey, name string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("Workout %d", len(s.days[day])+1)
	}
	e := NewEntry(name)
	s.days[day] = append(s.days[day], e)
	return e.Clone()
}

// RemoveExercise removes the first entry of day named name. The day key is
// kept even when its list becomes empty.
func (s *Store) RemoveExercise(day dates.DayKey, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.days[day] {
		if e.Name == name {
			s.removeAt(day, i)
			return true
		}
	}
	return false
}

// RemoveEntry removes the entry with the given id from day.
func (s *Store) RemoveEntry(day dates.DayKey, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.days[day] {
		if e.ID == id {
			s.removeAt(day, i)
			return true
		}
	}
	return false
}

func (s *Store) removeAt(day dates.DayKey, i int) {
	entries := s.days[day]
	out := make([]Entry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	out = append(out, entries[i+1:]...)
	s.days[day] = out
}

// AddSet appends an empty set to the index-th entry of day. Out-of-range
// indices are ignored and reported as false.
func (s *Store) AddSet(day dates.DayKey, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.days[day]
	if index < 0 || index >= len(entries) {
		return false
	}
	entries[index].Sets = append(entries[index].Sets, Set{})
	return true
}

// UpdateSet replaces one field of a set. Nothing is modified on error.
func (s *Store) UpdateSet(day dates.DayKey, index, setIndex int, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.days[day]
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("entry %d: %w", index, ErrIndexOutOfRange)
	}
	sets := entries[index].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return fmt.Errorf("set %d: %w", setIndex, ErrIndexOutOfRange)
	}

	switch field {
	case FieldReps:
		sets[setIndex].Reps = value
	case FieldWeight:
		sets[setIndex].Weight = value
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return nil
}

// Entries returns a copy of day's entries in display order.
func (s *Store) Entries(day dates.DayKey) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.days[day]
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Names returns the distinct entry names of day.
func (s *Store) Names(day dates.DayKey) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.days[day]))
	for _, e := range s.days[day] {
		out[e.Name] = struct{}{}
	}
	return out
}

// HasDay reports whether day has a key, even an empty one.
func (s *Store) HasDay(day dates.DayKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.days[day]
	return ok
}

// Days returns the known day keys in ascending order.
func (s *Store) Days() []dates.DayKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]dates.DayKey, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *Store) Snapshot() Days {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days.Clone()
}

// Replace swaps the whole log for days, as loaded by a pull.
func (s *Store) Replace(days Days) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if days == nil {
		days = Days{}
	}
	s.days = days.Clone()
}
