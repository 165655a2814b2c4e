package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/dates"
	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/repomanager"
)

const workoutsCollection = "workouts"

var nowFn = time.Now

// DocumentService lets a user read and replace the documents of their own
// workout collection "users/{uid}/workouts".
type DocumentService struct {
	repomanager repomanager.RepositoryManager
}

func NewDocumentService(m repomanager.RepositoryManager) *DocumentService {
	return &DocumentService{repomanager: m}
}

// checkCollection accepts "users/{userID}/workouts" only.
func checkCollection(userID, collection string) error {
	parts := strings.Split(collection, "/")
	if len(parts) != 3 || parts[0] != "users" || parts[2] != workoutsCollection || parts[1] == "" {
		return fmt.Errorf("unsupported collection %q: %w", collection, common.ErrValidation)
	}
	if parts[1] != userID {
		return common.ErrorUnauthorized
	}
	return nil
}

// Set fully replaces the document at path, which must be
// "users/{userID}/workouts/{day}" with a valid day key. data must be a
// JSON object.
func (s *DocumentService) Set(ctx context.Context, userID, path string, data []byte) error {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return fmt.Errorf("unsupported path %q: %w", path, common.ErrValidation)
	}
	if err := checkCollection(userID, path[:i]); err != nil {
		return err
	}
	if !dates.DayKey(path[i+1:]).Valid() {
		return fmt.Errorf("invalid day %q: %w", path[i+1:], common.ErrValidation)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return fmt.Errorf("document body must be a JSON object: %w", common.ErrValidation)
	}

	doc := models.Document{Path: path, Data: data, UpdatedAt: nowFn().UTC()}
	if err := s.repomanager.Documents(s.repomanager.Conn()).Put(ctx, doc); err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}
	return nil
}

// List returns the documents of collection ordered by id.
func (s *DocumentService) List(ctx context.Context, userID, collection string) ([]models.Document, error) {
	if err := checkCollection(userID, collection); err != nil {
		return nil, err
	}
	docs, err := s.repomanager.Documents(s.repomanager.Conn()).List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return docs, nil
}
