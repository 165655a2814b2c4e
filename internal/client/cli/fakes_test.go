package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/client/config"
	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

type fakeAuth struct {
	mu        sync.Mutex
	user      *models.Identity
	signInErr error
	signUpErr error
	pingErr   error
	email     string
	password  string
	listeners []func(*models.Identity)
}

func (f *fakeAuth) Restore(context.Context) error { return nil }

func (f *fakeAuth) signIn(email string) models.Identity {
	id := models.Identity{UserID: "u1", Email: email}
	f.mu.Lock()
	f.user = &id
	ls := f.listeners
	f.mu.Unlock()
	for _, fn := range ls {
		fn(&id)
	}
	return id
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (models.Identity, error) {
	f.email, f.password = email, password
	if f.signUpErr != nil {
		return models.Identity{}, f.signUpErr
	}
	return f.signIn(email), nil
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (models.Identity, error) {
	f.email, f.password = email, password
	if f.signInErr != nil {
		return models.Identity{}, f.signInErr
	}
	return f.signIn(email), nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	f.user = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeAuth) CurrentUser() *models.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeAuth) OnAuthStateChanged(fn func(*models.Identity)) func() {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
	fn(f.CurrentUser())
	return func() {}
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

type fakeSync struct {
	mu      sync.Mutex
	pulled  workout.Days
	pushes  []workout.Days
	asyncs  []workout.Days
	waited  bool
	pullErr error
}

func (f *fakeSync) Push(_ context.Context, _ string, days workout.Days) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, days)
	return nil
}

func (f *fakeSync) PushAsync(_ context.Context, _ string, days workout.Days) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asyncs = append(f.asyncs, days)
}

func (f *fakeSync) Wait() {
	f.mu.Lock()
	f.waited = true
	f.mu.Unlock()
}

func (f *fakeSync) Pull(context.Context, string) (workout.Days, error) {
	return f.pulled.Clone(), f.pullErr
}

// lockedBuffer is written from timer goroutines and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	b.buf.Reset()
	b.mu.Unlock()
}

var today = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

type harness struct {
	app  *App
	auth *fakeAuth
	sync *fakeSync
	out  *lockedBuffer
}

func newHarness(t *testing.T, input string, signedIn bool) *harness {
	t.Helper()
	withTerminal(t, false, nil, nil)

	h := &harness{auth: &fakeAuth{}, sync: &fakeSync{}, out: &lockedBuffer{}}
	if signedIn {
		h.auth.user = &models.Identity{UserID: "u1", Email: "a@b.c"}
	}
	cfg := &config.Config{OnlineCheckInterval: 10 * time.Millisecond}
	h.app = newApp(cfg, logging.Discard(), h.auth, h.sync, strings.NewReader(input), h.out,
		func() time.Time { return today })
	return h
}
