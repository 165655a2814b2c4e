package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/dbx"
	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
)

// PostgresRepository works over dbx.DBTX, so it can be bound to a
// transaction during token rotation.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, digest string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, digest, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, digest, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, digest string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE digest = $1
	`
	token := &models.RefreshToken{Digest: digest}
	if err := r.db.QueryRowContext(ctx, query, digest).Scan(&token.UserID, &token.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, digest string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE digest = $1
	`
	if _, err := r.db.ExecContext(ctx, query, digest); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
