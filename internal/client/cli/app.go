package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/dmitrijs2005/gymkeeper/internal/client/client"
	"github.com/dmitrijs2005/gymkeeper/internal/client/config"
	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/client/screen"
	"github.com/dmitrijs2005/gymkeeper/internal/client/services"
	"github.com/dmitrijs2005/gymkeeper/internal/filex"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
)

const databaseFile = "gymkeeper.db"

type App struct {
	config *config.Config
	log    logging.Logger

	auth   services.AuthService
	sync   services.SyncService
	screen *screen.Screen

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	online   atomic.Bool
	timersMu sync.Mutex
	timers   []*time.Timer

	closers []io.Closer
}

// NewApp opens the data directory, the log file, the session database and
// the server connection.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	dir, err := filex.EnsureDir("", cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	var mirror io.Writer
	if cfg.Verbose {
		mirror = os.Stderr
	}
	logger, logFile := logging.NewFileLogger(logging.FileParams{
		FileName: filepath.Join(dir, cfg.LogFile),
		Level:    cfg.LogLevel,
		Mirror:   mirror,
	})

	db, err := client.InitDatabase(ctx, filepath.Join(dir, databaseFile))
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		return nil, multierr.Append(err, multierr.Combine(db.Close(), logFile.Close()))
	}
	api.SetLogger(logger.With("component", "grpc_client"))

	auth := services.NewAuthService(api, db, logger.With("component", "auth"))
	syn := services.NewSyncService(api, logger.With("component", "sync"))

	a := newApp(cfg, logger, auth, syn, os.Stdin, os.Stdout, time.Now)
	a.closers = []io.Closer{api, db, logFile}
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, auth services.AuthService, syn services.SyncService,
	in io.Reader, out io.Writer, now func() time.Time) *App {
	return &App{
		config: cfg,
		log:    log,
		auth:   auth,
		sync:   syn,
		screen: screen.New(auth, syn, log.With("component", "screen"), now()),
		reader: bufio.NewReader(in),
		out:    out,
		now:    now,
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.auth.CurrentUser() != nil
}

// onAuthStateChanged loads the user's workouts whenever someone signs in.
func (a *App) onAuthStateChanged(ctx context.Context) func(*models.Identity) {
	return func(id *models.Identity) {
		if id == nil {
			return
		}
		if err := a.screen.Mount(ctx); err != nil {
			a.log.Warn(ctx, "initial load failed", "error", err)
			return
		}
		a.printf("Welcome, %s. %d day(s) of workouts loaded.\n", id.Email, len(a.screen.Store().Days()))
	}
}

// Run restores the previous session, starts the connectivity watcher and
// serves the REPL until the user exits or ctx is cancelled. The log is
// pushed and all pushes are awaited before it returns.
func (a *App) Run(ctx context.Context) error {
	a.println("Welcome to GymKeeper (type 'help' for commands)")

	if err := a.auth.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	unsubscribe := a.auth.OnAuthStateChanged(a.onAuthStateChanged(ctx))
	defer unsubscribe()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.status, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.println()
		a.println("Interrupted, saving workouts...")
	}
	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	a.screen.Suspend(ctx)
	a.sync.Wait()

	a.timersMu.Lock()
	for _, t := range a.timers {
		t.Stop()
	}
	a.timersMu.Unlock()

	var err error
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func (a *App) status() string {
	s := "offline"
	if a.online.Load() {
		s = "online"
	}
	if u := a.auth.CurrentUser(); u != nil {
		s = u.Email + " " + s
	}
	return fmt.Sprintf("(%s) %s", s, a.screen.SelectedDay())
}
