package documents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gymkeeper/internal/dbx"
	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
)

// PostgresRepository keeps documents in a JSONB column keyed by
// (collection, id).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, doc models.Document) error {
	query := `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, doc.Collection(), doc.ID(), doc.Data, doc.UpdatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, collection string) ([]models.Document, error) {
	query := `
		SELECT id, data, updated_at
		FROM documents
		WHERE collection = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var (
			id  string
			doc models.Document
		)
		if err := rows.Scan(&id, &doc.Data, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		doc.Path = collection + "/" + id
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
