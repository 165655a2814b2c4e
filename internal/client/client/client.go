package client

import (
	"context"

	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
)

// Client is the server API used by the auth service and the sync gateway.
type Client interface {
	SignUp(ctx context.Context, email, password string) (models.Identity, error)
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SetTokens(accessToken, refreshToken string)
	OnTokensRefreshed(fn func(accessToken, refreshToken string))
	Ping(ctx context.Context) error
	SetDocument(ctx context.Context, path string, data []byte) error
	ListDocuments(ctx context.Context, collection string) ([]models.Document, error)
	Close() error
}
