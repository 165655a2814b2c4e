// Package sessions keeps the signed-in session between launches. At most
// one session is stored at a time.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
)

type Repository interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s models.Session) error
	// Load returns (nil, nil) when nobody is signed in.
	Load(ctx context.Context) (*models.Session, error)
	// UpdateTokens rewrites the tokens of the stored session. It fails
	// with common.ErrorNotFound when there is none.
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}
