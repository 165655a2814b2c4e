// Package calendar implements the week/month day selector: which days are
// visible, which day is selected, and how swipes and taps move between them.
// It holds display state only and never touches workout data.
package calendar

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/dates"
)

type Mode int

const (
	Week Mode = iota
	Month
)

func (m Mode) String() string {
	if m == Month {
		return "month"
	}
	return "week"
}

// Selector is the calendar state machine. It is not safe for concurrent
// use; the UI loop owns it.
type Selector struct {
	mode      Mode
	selected  time.Time
	weekStart time.Time
	month     time.Time // first day of the visible month

	pendingX, pendingY float64

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(time.Time)
}

// New returns a selector in Week mode with today selected.
func New(today time.Time) *Selector {
	d := dates.Midnight(today)
	return &Selector{
		mode:      Week,
		selected:  d,
		weekStart: dates.WeekStart(d),
		month:     firstOfMonth(d),
		listeners: map[int]func(time.Time){},
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *Selector) Mode() Mode                { return s.mode }
func (s *Selector) Selected() time.Time       { return s.selected }
func (s *Selector) SelectedKey() dates.DayKey { return dates.Key(s.selected) }

// VisibleWeek is the 7-day window shown in Week mode.
func (s *Selector) VisibleWeek() [7]time.Time { return dates.WeekDates(s.weekStart) }

// VisibleMonth is the month shown in Month mode.
func (s *Selector) VisibleMonth() (int, time.Month) { return s.month.Year(), s.month.Month() }

func (s *Selector) MonthGrid() []time.Time {
	return dates.MonthDates(s.month.Year(), s.month.Month(), s.month.Location())
}

// OnSelect registers fn to be called with every selected date. The returned
// func removes it.
func (s *Selector) OnSelect(fn func(time.Time)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Select makes date the selected day in either mode, brings it into view
// and notifies listeners.
func (s *Selector) Select(date time.Time) {
	d := dates.Midnight(date)
	s.selected = d
	s.weekStart = dates.WeekStart(d)
	s.month = firstOfMonth(d)

	s.mu.Lock()
	fns := make([]func(time.Time), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(d)
	}
}

// Handle applies a gesture and reports whether the state changed.
func (s *Selector) Handle(g Gesture) bool {
	switch g {
	case TapHandle:
		if s.mode == Week {
			s.expand()
		} else {
			s.mode = Week
		}
		return true
	case SwipeDown:
		if s.mode == Week {
			s.expand()
			return true
		}
	case SwipeUp:
		if s.mode == Month {
			s.mode = Week
			return true
		}
	case SwipeLeft:
		s.shift(1)
		return true
	case SwipeRight:
		s.shift(-1)
		return true
	}
	return false
}

// expand opens the month that contains the visible week's selection, or the
// week's Monday when the selection is elsewhere.
func (s *Selector) expand() {
	s.mode = Month
	anchor := s.weekStart
	for _, d := range s.VisibleWeek() {
		if dates.SameDay(d, s.selected) {
			anchor = d
		}
	}
	s.month = firstOfMonth(anchor)
}

func (s *Selector) shift(n int) {
	if s.mode == Week {
		s.weekStart = dates.AddWeeks(s.weekStart, n)
		return
	}
	s.month = dates.AddMonths(s.month, n)
}

// Next and Prev page forward and backward in the current mode.
func (s *Selector) Next() { s.Handle(SwipeLeft) }
func (s *Selector) Prev() { s.Handle(SwipeRight) }

// Drag accumulates a pending pan offset.
func (s *Selector) Drag(dx, dy float64) {
	s.pendingX += dx
	s.pendingY += dy
}

// Release ends the pan: the pending offset is resolved to a gesture, applied
// and cleared.
func (s *Selector) Release() Gesture {
	g := Resolve(s.pendingX, s.pendingY)
	s.pendingX, s.pendingY = 0, 0
	if !s.Handle(g) {
		return None
	}
	return g
}
