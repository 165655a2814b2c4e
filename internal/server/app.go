// Package server wires configuration, storage and services together and
// runs the gRPC endpoint until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"

	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	"github.com/dmitrijs2005/gymkeeper/internal/server/config"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gymkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/gymkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	server  *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(c.LogLevel)

	m, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(m, c)
	ds := services.NewDocumentService(m)

	return &App{
		config:  c,
		logger:  logger,
		manager: m,
		server:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ds),
	}, nil
}

// newRepositoryManager opens the account backend and, when documents live
// elsewhere, swaps in the document repository for that backend.
func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	var m repomanager.RepositoryManager

	switch c.Storage {
	case config.StorageMemory:
		m = repomanager.NewMemoryRepositoryManager()
	case config.StoragePostgres:
		db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		pm := repomanager.NewPostgresRepositoryManager(db)
		if err := pm.RunMigrations(ctx); err != nil {
			return nil, multierr.Append(fmt.Errorf("migrations: %w", err), pm.Close())
		}
		m = pm
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	docs := c.DocumentBackend()
	switch {
	case docs == c.Storage:
		return m, nil
	case docs == config.StorageS3:
		client, err := documents.NewS3Client(ctx, documents.S3Options{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, multierr.Append(err, m.Close())
		}
		return repomanager.WithDocuments(m, documents.NewS3Repository(client, c.S3Bucket)), nil
	default:
		return nil, multierr.Append(
			fmt.Errorf("document storage %q cannot be combined with storage %q", docs, c.Storage),
			m.Close(),
		)
	}
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := app.initSignalHandler(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...",
		"address", app.config.EndpointAddrGRPC,
		"storage", app.config.Storage,
		"documents", app.config.DocumentBackend(),
	)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "grpc server stopped", "error", err)
	}
	err = multierr.Append(err, app.manager.Close())

	app.logger.Info(ctx, "App stopped")
	return err
}
