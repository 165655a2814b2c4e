// Package screen is the main workout screen: it owns the live workout log,
// keeps the calendar, the exercise picker and the log in step, and decides
// when the log is pulled from and pushed to the server.
package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/calendar"
	"github.com/dmitrijs2005/gymkeeper/internal/catalog"
	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/dates"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

// AppState mirrors the platform app lifecycle.
type AppState string

const (
	Active     AppState = "active"
	Background AppState = "background"
	Inactive   AppState = "inactive"
)

// ParseAppState accepts the three lifecycle names.
func ParseAppState(s string) (AppState, error) {
	switch st := AppState(s); st {
	case Active, Background, Inactive:
		return st, nil
	}
	return "", fmt.Errorf("unknown app state %q", s)
}

// Session is the part of the auth service the screen needs.
type Session interface {
	CurrentUser() *models.Identity
	SignOut(ctx context.Context) error
}

// Syncer is the part of the sync service the screen needs.
type Syncer interface {
	Push(ctx context.Context, userID string, days workout.Days) error
	PushAsync(ctx context.Context, userID string, days workout.Days)
	Pull(ctx context.Context, userID string) (workout.Days, error)
}

// Screen is driven from a single goroutine.
type Screen struct {
	session Session
	sync    Syncer
	log     logging.Logger

	store    *workout.Store
	calendar *calendar.Selector
	picker   *catalog.Picker

	state   AppState
	loading bool
}

func New(session Session, syncer Syncer, log logging.Logger, today time.Time) *Screen {
	s := &Screen{
		session:  session,
		sync:     syncer,
		log:      log,
		store:    workout.NewStore(),
		calendar: calendar.New(today),
		state:    Active,
		loading:  true,
	}
	s.picker = catalog.NewPicker(s.onPick)
	s.calendar.OnSelect(s.onDateChange)
	return s
}

func (s *Screen) Calendar() *calendar.Selector { return s.calendar }
func (s *Screen) Picker() *catalog.Picker      { return s.picker }
func (s *Screen) Store() *workout.Store        { return s.store }
func (s *Screen) State() AppState              { return s.state }

// Loading is true until the first pull has completed.
func (s *Screen) Loading() bool { return s.loading }

func (s *Screen) SelectedDay() dates.DayKey { return s.calendar.SelectedKey() }

func (s *Screen) userID(ctx context.Context, op string) (string, error) {
	u := s.session.CurrentUser()
	if u == nil || u.UserID == "" {
		s.log.Warn(ctx, op+" skipped: no user is signed in")
		return "", fmt.Errorf("%s: %w", op, common.ErrNotAuthenticated)
	}
	return u.UserID, nil
}

// Mount loads the signed-in user's log from the server, replacing whatever
// the screen held.
func (s *Screen) Mount(ctx context.Context) error {
	uid, err := s.userID(ctx, "pull")
	if err != nil {
		return err
	}
	days, err := s.sync.Pull(ctx, uid)
	if err != nil {
		return err
	}
	s.store.Replace(days)
	s.loading = false
	s.reseedPicker()
	return nil
}

// SetAppState records a lifecycle transition. Leaving the active state
// pushes a snapshot of the log in the background.
func (s *Screen) SetAppState(ctx context.Context, next AppState) {
	prev := s.state
	s.state = next
	if prev == Active && (next == Background || next == Inactive) {
		_ = s.PushNow(ctx)
	}
}

// Suspend moves the screen to the background on exit. Unlike SetAppState
// it pushes whenever a user is signed in, so edits made while already in
// the background are not lost.
func (s *Screen) Suspend(ctx context.Context) {
	s.state = Background
	if u := s.session.CurrentUser(); u == nil || u.UserID == "" {
		return
	}
	_ = s.PushNow(ctx)
}

// PushNow starts a background push of the current log.
func (s *Screen) PushNow(ctx context.Context) error {
	uid, err := s.userID(ctx, "push")
	if err != nil {
		return err
	}
	s.sync.PushAsync(ctx, uid, s.store.Snapshot())
	return nil
}

// Logout pushes the log, waits for it, then signs out and forgets the log.
func (s *Screen) Logout(ctx context.Context) error {
	if uid, err := s.userID(ctx, "push"); err == nil {
		if err := s.sync.Push(ctx, uid, s.store.Snapshot()); err != nil {
			s.log.Warn(ctx, "push before sign out failed", "error", err)
		}
	}
	if err := s.session.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.store.Replace(nil)
	s.loading = true
	s.picker.Close()
	return nil
}

// Select changes the selected day.
func (s *Screen) Select(date time.Time) {
	s.calendar.Select(date)
}

func (s *Screen) onDateChange(time.Time) {
	s.reseedPicker()
}

func (s *Screen) reseedPicker() {
	s.picker.Reset(s.store.Names(s.SelectedDay()))
}

// Entries lists the selected day's exercises in display order.
func (s *Screen) Entries() []workout.Entry {
	return s.store.Entries(s.SelectedDay())
}

// AddExercise adds an exercise to the selected day; an empty name yields
// the "Workout N" default.
func (s *Screen) AddExercise(name string) workout.Entry {
	e := s.store.AddExercise(s.SelectedDay(), name)
	s.reseedPicker()
	return e
}

// RemoveAt removes the index-th exercise of the selected day.
func (s *Screen) RemoveAt(index int) bool {
	entries := s.Entries()
	if index < 0 || index >= len(entries) {
		return false
	}
	ok := s.store.RemoveEntry(s.SelectedDay(), entries[index].ID)
	s.reseedPicker()
	return ok
}

// RemoveExercise removes the first exercise of the selected day named name.
func (s *Screen) RemoveExercise(name string) bool {
	ok := s.store.RemoveExercise(s.SelectedDay(), name)
	s.reseedPicker()
	return ok
}

func (s *Screen) AddSet(index int) bool {
	return s.store.AddSet(s.SelectedDay(), index)
}

func (s *Screen) UpdateSet(index, setIndex int, field workout.Field, value string) error {
	return s.store.UpdateSet(s.SelectedDay(), index, setIndex, field, value)
}

// OpenPicker shows the exercise picker seeded with the selected day's names.
func (s *Screen) OpenPicker() {
	s.picker.Open(s.store.Names(s.SelectedDay()))
}

func (s *Screen) onPick(ev catalog.Event) {
	day := s.SelectedDay()
	switch ev.Action {
	case catalog.Add:
		s.store.AddExercise(day, ev.Exercise)
	case catalog.Remove:
		s.store.RemoveExercise(day, ev.Exercise)
	}
	s.reseedPicker()
}
