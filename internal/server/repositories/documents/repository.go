// Package documents stores workout documents: JSON objects addressed by a
// slash-separated path, grouped into collections by their parent path.
// Backends are PostgreSQL, S3-compatible object storage and memory.
package documents

import (
	"context"

	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
)

type Repository interface {
	// Put creates or fully replaces the document at doc.Path.
	Put(ctx context.Context, doc models.Document) error
	// List returns the direct children of collection ordered by id.
	List(ctx context.Context, collection string) ([]models.Document, error)
}
