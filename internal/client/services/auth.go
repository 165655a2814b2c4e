// Package services contains the client's application services: the auth
// service that owns the signed-in session and the sync service that moves
// the workout log to and from the server.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gymkeeper/internal/client/client"
	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
)

// AuthService owns the signed-in session. Listeners registered with
// OnAuthStateChanged are called with the new identity after every sign-in,
// sign-out and restore, and once immediately on registration; nil means
// signed out.
type AuthService interface {
	Restore(ctx context.Context) error
	SignUp(ctx context.Context, email, password string) (models.Identity, error)
	SignIn(ctx context.Context, email, password string) (models.Identity, error)
	SignOut(ctx context.Context) error
	CurrentUser() *models.Identity
	OnAuthStateChanged(fn func(*models.Identity)) (unsubscribe func())
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	repo   sessions.Repository
	log    logging.Logger

	mu        sync.Mutex
	current   *models.Identity
	nextID    int
	listeners map[int]func(*models.Identity)
}

// NewAuthService binds the service to the API client and the local database.
// Tokens rotated by the client are written back to the database.
func NewAuthService(c client.Client, db *sql.DB, log logging.Logger) AuthService {
	a := &authService{
		client:    c,
		repo:      sessions.NewSQLiteRepository(db),
		log:       log,
		listeners: map[int]func(*models.Identity){},
	}
	c.OnTokensRefreshed(a.persistTokens)
	return a
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}
	return nil
}

// Restore loads a session saved by an earlier run, if any.
func (a *authService) Restore(ctx context.Context) error {
	s, err := a.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s == nil || s.UserID == "" {
		a.setCurrent(nil)
		return nil
	}

	a.client.SetTokens(s.AccessToken, s.RefreshToken)
	id := s.Identity()
	a.setCurrent(&id)
	a.log.Info(ctx, "session restored", "user", id.UserID)
	return nil
}

// SignUp creates the account and signs it in.
func (a *authService) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	if err := validateCredentials(email, password); err != nil {
		return models.Identity{}, err
	}
	if _, err := a.client.SignUp(ctx, email, password); err != nil {
		return models.Identity{}, fmt.Errorf("sign up: %w", err)
	}
	return a.SignIn(ctx, email, password)
}

func (a *authService) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	if err := validateCredentials(email, password); err != nil {
		return models.Identity{}, err
	}

	session, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("sign in: %w", err)
	}
	if err := a.repo.Save(ctx, session); err != nil {
		return models.Identity{}, fmt.Errorf("session saving error: %w", err)
	}

	id := session.Identity()
	a.setCurrent(&id)
	a.log.Info(ctx, "signed in", "user", id.UserID)
	return id, nil
}

// SignOut forgets the session locally and in the client.
func (a *authService) SignOut(ctx context.Context) error {
	if err := a.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.client.SetTokens("", "")
	a.setCurrent(nil)
	a.log.Info(ctx, "signed out")
	return nil
}

func (a *authService) CurrentUser() *models.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	cp := *a.current
	return &cp
}

func (a *authService) OnAuthStateChanged(fn func(*models.Identity)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	fn(a.CurrentUser())

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) setCurrent(id *models.Identity) {
	a.mu.Lock()
	a.current = id
	fns := make([]func(*models.Identity), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(a.CurrentUser())
	}
}

func (a *authService) persistTokens(accessToken, refreshToken string) {
	ctx := context.Background()
	if err := a.repo.UpdateTokens(ctx, accessToken, refreshToken); err != nil {
		a.log.Warn(ctx, "rotated tokens not saved", "error", err)
	}
}
