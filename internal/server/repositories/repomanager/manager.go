// Package repomanager vends the repositories of one storage backend and
// runs work against them, optionally inside a transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gymkeeper/internal/dbx"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a connection or transaction.
// Conn is the plain connection; WithTx hands fn a transaction that is
// committed when fn returns nil.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() dbx.DBTX
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Documents(db dbx.DBTX) documents.Repository
	Close() error
}

type withDocuments struct {
	RepositoryManager
	docs documents.Repository
}

func (m withDocuments) Documents(dbx.DBTX) documents.Repository { return m.docs }

// WithDocuments keeps accounts in m but serves documents from docs, for
// stores that live outside the database such as S3.
func WithDocuments(m RepositoryManager, docs documents.Repository) RepositoryManager {
	return withDocuments{RepositoryManager: m, docs: docs}
}
