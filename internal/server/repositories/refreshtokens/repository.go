// Package refreshtokens stores refresh tokens for the sign-in flow. Tokens
// are looked up by digest; the plain token only ever lives on the client.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a token digest for userID expiring at now+validity.
	Create(ctx context.Context, userID string, digest string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the digest is unknown.
	Find(ctx context.Context, digest string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, digest string) error
}
