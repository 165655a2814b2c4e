package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gymkeeper/internal/server/config"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/gymkeeper/internal/server/repositories/repomanager"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewRepositoryManager(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		m, err := newRepositoryManager(ctx, memoryConfig())
		require.NoError(t, err)
		assert.IsType(t, &repomanager.MemoryRepositoryManager{}, m)
	})

	t.Run("memory accounts with s3 documents", func(t *testing.T) {
		c := memoryConfig()
		c.DocumentStorage = config.StorageS3
		m, err := newRepositoryManager(ctx, c)
		require.NoError(t, err)
		assert.IsType(t, &documents.S3Repository{}, m.Documents(m.Conn()))
	})

	t.Run("postgres documents need postgres storage", func(t *testing.T) {
		c := memoryConfig()
		c.DocumentStorage = config.StoragePostgres
		_, err := newRepositoryManager(ctx, c)
		assert.ErrorContains(t, err, "cannot be combined")
	})

	t.Run("unknown storage", func(t *testing.T) {
		c := memoryConfig()
		c.Storage = "floppy"
		_, err := newRepositoryManager(ctx, c)
		assert.ErrorContains(t, err, "unknown storage")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	app, err := NewApp(ctx, memoryConfig())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestApp_RunReportsListenError(t *testing.T) {
	c := memoryConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}
