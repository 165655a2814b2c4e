package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gymkeeper/internal/dbx"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager serves process-local repositories. The DBTX
// arguments are ignored; WithTx only serializes its callers.
type MemoryRepositoryManager struct {
	txMu          sync.Mutex
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	documents     *documents.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		documents:     documents.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Documents(dbx.DBTX) documents.Repository { return m.documents }

func (m *MemoryRepositoryManager) Close() error { return nil }
