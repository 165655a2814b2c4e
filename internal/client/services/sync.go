package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/dates"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

// DocumentStore is the remote document API the sync service writes to.
type DocumentStore interface {
	SetDocument(ctx context.Context, path string, data []byte) error
	ListDocuments(ctx context.Context, collection string) ([]models.Document, error)
}

// SyncService copies the workout log to the server, one document per day,
// and reads it back. It keeps no state besides in-flight async pushes.
//
// Only a missing user id is reported as an error (common.ErrNotAuthenticated).
// Transport failures are logged and swallowed: Push goes on with the next
// day and Pull returns an empty log.
type SyncService interface {
	Push(ctx context.Context, userID string, days workout.Days) error
	PushAsync(ctx context.Context, userID string, days workout.Days)
	Wait()
	Pull(ctx context.Context, userID string) (workout.Days, error)
}

type workoutDocument struct {
	Exercises []workout.Entry `json:"exercises"`
	Timestamp time.Time       `json:"timestamp"`
}

var nowFn = time.Now

func WorkoutsCollection(userID string) string {
	return "users/" + userID + "/workouts"
}

func WorkoutPath(userID string, day dates.DayKey) string {
	return WorkoutsCollection(userID) + "/" + string(day)
}

type syncService struct {
	store DocumentStore
	log   logging.Logger
	wg    sync.WaitGroup
}

func NewSyncService(store DocumentStore, log logging.Logger) SyncService {
	return &syncService{store: store, log: log}
}

// Push writes every day of days, including days whose list is empty, as a
// full replacement of that day's document.
func (s *syncService) Push(ctx context.Context, userID string, days workout.Days) error {
	if userID == "" {
		return fmt.Errorf("push: %w", common.ErrNotAuthenticated)
	}

	ts := nowFn().UTC()
	written := 0
	for day, entries := range days {
		if entries == nil {
			entries = []workout.Entry{}
		}
		data, err := json.Marshal(workoutDocument{Exercises: entries, Timestamp: ts})
		if err != nil {
			s.log.Error(ctx, "workout encode failed", "day", day, "error", err)
			continue
		}
		if err := s.store.SetDocument(ctx, WorkoutPath(userID, day), data); err != nil {
			s.log.Warn(ctx, "workout push failed", "day", day, "error", err)
			continue
		}
		written++
	}

	s.log.Info(ctx, "workouts pushed", "user", userID, "days", len(days), "written", written)
	return nil
}

// PushAsync pushes a private copy of days on its own goroutine. The push
// outlives cancellation of ctx; Wait blocks until it is done.
func (s *syncService) PushAsync(ctx context.Context, userID string, days workout.Days) {
	snapshot := days.Clone()
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Push(ctx, userID, snapshot); err != nil {
			s.log.Warn(ctx, "background push skipped", "error", err)
		}
	}()
}

func (s *syncService) Wait() {
	s.wg.Wait()
}

// Pull rebuilds the log from the user's day documents. Documents whose id
// is not a day key or whose body does not decode are skipped. Entries
// stored without an id get a fresh one.
func (s *syncService) Pull(ctx context.Context, userID string) (workout.Days, error) {
	if userID == "" {
		return nil, fmt.Errorf("pull: %w", common.ErrNotAuthenticated)
	}

	out := workout.Days{}
	docs, err := s.store.ListDocuments(ctx, WorkoutsCollection(userID))
	if err != nil {
		s.log.Warn(ctx, "workout pull failed", "user", userID, "error", err)
		return out, nil
	}

	for _, d := range docs {
		day := dates.DayKey(d.ID())
		if !day.Valid() {
			s.log.Warn(ctx, "skipping document with bad id", "path", d.Path)
			continue
		}
		var body workoutDocument
		if err := json.Unmarshal(d.Data, &body); err != nil {
			s.log.Warn(ctx, "skipping malformed document", "path", d.Path, "error", err)
			continue
		}

		entries := make([]workout.Entry, 0, len(body.Exercises))
		for _, e := range body.Exercises {
			if e.ID == "" {
				e.ID = uuid.NewString()
			}
			if e.Sets == nil {
				e.Sets = []workout.Set{}
			}
			entries = append(entries, e)
		}
		out[day] = entries
	}

	s.log.Info(ctx, "workouts pulled", "user", userID, "days", len(out))
	return out, nil
}
