package documents

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
)

type MemoryRepository struct {
	mu          sync.RWMutex
	collections map[string]map[string]models.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{collections: map[string]map[string]models.Document{}}
}

func (r *MemoryRepository) Put(_ context.Context, doc models.Document) error {
	doc.Data = slices.Clone(doc.Data)

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collections[doc.Collection()]
	if !ok {
		c = map[string]models.Document{}
		r.collections[doc.Collection()] = c
	}
	c[doc.ID()] = doc
	return nil
}

func (r *MemoryRepository) List(_ context.Context, collection string) ([]models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.collections[collection]
	out := make([]models.Document, 0, len(c))
	for _, d := range c {
		d.Data = slices.Clone(d.Data)
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b models.Document) int { return strings.Compare(a.ID(), b.ID()) })
	return out, nil
}
