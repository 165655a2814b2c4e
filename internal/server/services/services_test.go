package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/cryptox"
	"github.com/dmitrijs2005/gymkeeper/internal/dbx"
	"github.com/dmitrijs2005/gymkeeper/internal/server/config"
	"github.com/dmitrijs2005/gymkeeper/internal/server/models"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/users"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

func newUserService(m repomanager.RepositoryManager) *UserService {
	s := NewUserService(m, testConfig())
	s.hashCost = bcrypt.MinCost
	return s
}

// failingManager wraps a memory manager and lets tests break single repositories.
type failingManager struct {
	*repomanager.MemoryRepositoryManager
	users  users.Repository
	tokens refreshtokens.Repository
	docs   documents.Repository
}

func (m *failingManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.MemoryRepositoryManager.Users(db)
}

func (m *failingManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	if m.tokens != nil {
		return m.tokens
	}
	return m.MemoryRepositoryManager.RefreshTokens(db)
}

func (m *failingManager) Documents(db dbx.DBTX) documents.Repository {
	if m.docs != nil {
		return m.docs
	}
	return m.MemoryRepositoryManager.Documents(db)
}

type brokenUsers struct{ err error }

func (b brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, b.err }
func (b brokenUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, b.err }

type brokenTokens struct{ err error }

func (b brokenTokens) Create(context.Context, string, string, time.Duration) error { return b.err }
func (b brokenTokens) Find(context.Context, string) (*models.RefreshToken, error) { return nil, b.err }
func (b brokenTokens) Delete(context.Context, string) error                       { return b.err }

type brokenDocs struct{ err error }

func (b brokenDocs) Put(context.Context, models.Document) error { return b.err }
func (b brokenDocs) List(context.Context, string) ([]models.Document, error) {
	return nil, b.err
}

func TestSignUp_CreatesUserAndProfile(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	s := newUserService(m)

	u, err := s.SignUp(ctx, "  Alice@Example.COM ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NoError(t, cryptox.CheckPassword(u.PasswordHash, "secret1"))

	profiles, err := m.Documents(nil).List(ctx, "users")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, u.ID, profiles[0].ID())
	assert.Contains(t, string(profiles[0].Data), `"email":"alice@example.com"`)
}

func TestSignUp_Validation(t *testing.T) {
	s := newUserService(repomanager.NewMemoryRepositoryManager())

	for _, tc := range []struct{ email, password string }{
		{"", "secret1"},
		{"a@b.c", ""},
		{"not-an-email", "secret1"},
		{"a@b.c", "12345"},
	} {
		_, err := s.SignUp(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, common.ErrValidation, "%q/%q", tc.email, tc.password)
	}
}

func TestSignUp_Duplicate(t *testing.T) {
	s := newUserService(repomanager.NewMemoryRepositoryManager())
	email := gofakeit.Email()

	_, err := s.SignUp(context.Background(), email, "secret1")
	require.NoError(t, err)
	_, err = s.SignUp(context.Background(), email, "secret2")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSignUp_ProfileFailure(t *testing.T) {
	m := &failingManager{
		MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager(),
		docs:                    brokenDocs{err: errors.New("disk full")},
	}
	_, err := newUserService(m).SignUp(context.Background(), "a@b.c", "secret1")
	assert.ErrorContains(t, err, "error creating profile: disk full")
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	s := newUserService(repomanager.NewMemoryRepositoryManager())
	created, err := s.SignUp(ctx, "a@b.c", "secret1")
	require.NoError(t, err)

	u, pair, err := s.SignIn(ctx, "A@B.C", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, created.ID, pair.UserID)
	assert.NotEmpty(t, pair.RefreshToken)

	uid, err := s.AccessTokenUserID(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, uid)

	_, _, err = s.SignIn(ctx, "a@b.c", "wrong-password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = s.SignIn(ctx, "nobody@b.c", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = s.SignIn(ctx, "", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSignIn_RepositoryErrors(t *testing.T) {
	ctx := context.Background()

	m := &failingManager{
		MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager(),
		users:                   brokenUsers{err: errors.New("db down")},
	}
	_, _, err := newUserService(m).SignIn(ctx, "a@b.c", "secret1")
	assert.ErrorIs(t, err, common.ErrorInternal)

	m = &failingManager{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	s := newUserService(m)
	_, err = s.SignUp(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	m.tokens = brokenTokens{err: errors.New("db down")}
	_, _, err = s.SignIn(ctx, "a@b.c", "secret1")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRefreshToken_Rotates(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	s := newUserService(m)
	_, err := s.SignUp(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	_, first, err := s.SignIn(ctx, "a@b.c", "secret1")
	require.NoError(t, err)

	second, err := s.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = s.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "old token is revoked")

	_, err = m.RefreshTokens(nil).Find(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorNotFound, "only digests are stored")
}

func TestRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	s := newUserService(m)
	require.NoError(t, m.RefreshTokens(nil).Create(ctx, "u1", cryptox.TokenDigest("old"), -time.Minute))

	_, err := s.RefreshToken(ctx, "old")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	_, err = m.RefreshTokens(nil).Find(ctx, cryptox.TokenDigest("old"))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRefreshToken_Errors(t *testing.T) {
	ctx := context.Background()
	s := newUserService(repomanager.NewMemoryRepositoryManager())

	_, err := s.RefreshToken(ctx, "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	m := &failingManager{
		MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager(),
		tokens:                  brokenTokens{err: errors.New("db down")},
	}
	_, err = newUserService(m).RefreshToken(ctx, "r")
	assert.ErrorContains(t, err, "error searching refresh token: db down")
}

func TestDocumentService_SetAndList(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })

	s := NewDocumentService(repomanager.NewMemoryRepositoryManager())

	require.NoError(t, s.Set(ctx, "u1", "users/u1/workouts/2024-06-11", []byte(`{"exercises":[]}`)))
	require.NoError(t, s.Set(ctx, "u1", "users/u1/workouts/2024-06-10", []byte(`{"exercises":[{"name":"Squat"}]}`)))

	docs, err := s.List(ctx, "u1", "users/u1/workouts")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "2024-06-10", docs[0].ID())
	assert.Equal(t, at, docs[0].UpdatedAt)

	other, err := s.List(ctx, "u2", "users/u2/workouts")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDocumentService_Rejects(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentService(repomanager.NewMemoryRepositoryManager())
	body := []byte(`{}`)

	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u2/workouts/2024-06-10", body), common.ErrorUnauthorized)
	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u1/workouts/2024-13-01", body), common.ErrValidation)
	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u1/notes/2024-06-10", body), common.ErrValidation)
	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u1", body), common.ErrValidation)
	assert.ErrorIs(t, s.Set(ctx, "u1", "nothing", body), common.ErrValidation)
	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u1/workouts/2024-06-10", []byte(`[1]`)), common.ErrValidation)
	assert.ErrorIs(t, s.Set(ctx, "u1", "users/u1/workouts/2024-06-10", []byte(`null`)), common.ErrValidation)

	_, err := s.List(ctx, "u1", "users/u2/workouts")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.List(ctx, "u1", "users")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDocumentService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	m := &failingManager{
		MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager(),
		docs:                    brokenDocs{err: errors.New("bucket gone")},
	}
	s := NewDocumentService(m)

	assert.ErrorContains(t, s.Set(ctx, "u1", "users/u1/workouts/2024-06-10", []byte(`{}`)), "bucket gone")
	_, err := s.List(ctx, "u1", "users/u1/workouts")
	assert.ErrorContains(t, err, "bucket gone")
}
