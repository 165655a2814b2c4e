package client

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	pb "github.com/dmitrijs2005/gymkeeper/internal/proto"
)

// fakeServer answers both services from memory. Access tokens listed in
// expired are rejected with "token expired".
type fakeServer struct {
	mu        sync.Mutex
	expired   map[string]bool
	seenToken []string
	refreshes int
	docs      map[string][]byte
	signUpErr error
	pingErr   error
	// junk is appended to every ListDocuments response.
	junk []*structpb.Value
}

func (f *fakeServer) token(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (f *fakeServer) authorize(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok := f.token(ctx)
	f.seenToken = append(f.seenToken, tok)
	if tok == "" {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	if f.expired[tok] {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	return nil
}

func (f *fakeServer) SignUp(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	c := pb.CredentialsFrom(in)
	return pb.Session{UserID: "uid-" + c.Email, Email: c.Email}.Struct(), nil
}

func (f *fakeServer) SignIn(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	c := pb.CredentialsFrom(in)
	if c.Password != "secret" {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	return pb.Session{UserID: "u1", Email: c.Email, AccessToken: "access-1", RefreshToken: "refresh-1"}.Struct(), nil
}

func (f *fakeServer) Refresh(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pb.RefreshRequestFrom(in).RefreshToken != "refresh-1" {
		return nil, status.Error(codes.Unauthenticated, "refresh token invalid")
	}
	f.refreshes++
	return pb.Session{UserID: "u1", AccessToken: "access-2", RefreshToken: "refresh-2"}.Struct(), nil
}

func (f *fakeServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	if f.pingErr != nil {
		return nil, f.pingErr
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) SetDocument(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	d, err := pb.DocumentFrom(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	f.mu.Lock()
	f.docs[d.Path] = d.Data
	f.mu.Unlock()
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) ListDocuments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	prefix := pb.ListRequestFrom(in).Collection + "/"
	f.mu.Lock()
	var list pb.DocumentList
	for p, data := range f.docs {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			list = append(list, pb.Document{Path: p, Data: data})
		}
	}
	f.mu.Unlock()
	resp, _ := list.Struct()
	values := resp.Fields["documents"].GetListValue()
	values.Values = append(values.Values, f.junk...)
	return resp, nil
}

func startFake(t *testing.T, f *fakeServer) *GRPCClient {
	t.Helper()
	if f.docs == nil {
		f.docs = map[string][]byte{}
	}
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterAuthServer(srv, f)
	pb.RegisterDocumentsServer(srv, f)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSignUpSignIn(t *testing.T) {
	c := startFake(t, &fakeServer{})
	ctx := context.Background()

	id, err := c.SignUp(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-a@b.c", id.UserID)

	s, err := c.SignIn(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	access, refresh := c.tokens()
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)

	_, err = c.SignIn(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignUp_ErrorMapping(t *testing.T) {
	f := &fakeServer{signUpErr: status.Error(codes.AlreadyExists, "taken")}
	c := startFake(t, f)

	_, err := c.SignUp(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	f.signUpErr = status.Error(codes.InvalidArgument, "email is required")
	_, err = c.SignUp(context.Background(), "", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPing(t *testing.T) {
	f := &fakeServer{}
	c := startFake(t, f)
	require.NoError(t, c.Ping(context.Background()))

	f.pingErr = status.Error(codes.Unavailable, "down")
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestDocuments_RoundTrip(t *testing.T) {
	c := startFake(t, &fakeServer{})
	ctx := context.Background()
	_, err := c.SignIn(ctx, "a@b.c", "secret")
	require.NoError(t, err)

	require.NoError(t, c.SetDocument(ctx, "users/u1/workouts/2024-06-10", []byte(`{"exercises":[]}`)))
	require.NoError(t, c.SetDocument(ctx, "users/u2/workouts/2024-06-10", []byte(`{"exercises":[]}`)))

	docs, err := c.ListDocuments(ctx, "users/u1/workouts")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2024-06-10", docs[0].ID())
	assert.JSONEq(t, `{"exercises":[]}`, string(docs[0].Data))
}

func TestDocuments_MalformedEntriesAreLogged(t *testing.T) {
	f := &fakeServer{junk: []*structpb.Value{structpb.NewStringValue("garbage")}}
	c := startFake(t, f)
	var buf bytes.Buffer
	c.SetLogger(logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	ctx := context.Background()
	_, err := c.SignIn(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	require.NoError(t, c.SetDocument(ctx, "users/u1/workouts/2024-06-10", []byte(`{"exercises":[]}`)))

	docs, err := c.ListDocuments(ctx, "users/u1/workouts")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "skipped=1")
}

func TestDocuments_WithoutSession(t *testing.T) {
	c := startFake(t, &fakeServer{})

	err := c.SetDocument(context.Background(), "users/u1/workouts/2024-06-10", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExpiredTokenIsRefreshedOnce(t *testing.T) {
	f := &fakeServer{expired: map[string]bool{"access-1": true}}
	c := startFake(t, f)
	ctx := context.Background()

	var persisted []string
	c.OnTokensRefreshed(func(a, r string) { persisted = append(persisted, a, r) })
	c.SetTokens("access-1", "refresh-1")

	require.NoError(t, c.SetDocument(ctx, "users/u1/workouts/2024-06-10", []byte(`{}`)))

	assert.Equal(t, 1, f.refreshes)
	assert.Equal(t, []string{"access-1", "access-2"}, f.seenToken)
	assert.Equal(t, []string{"access-2", "refresh-2"}, persisted)

	_, err := c.ListDocuments(ctx, "users/u1/workouts")
	require.NoError(t, err)
	assert.Equal(t, 1, f.refreshes, "new token is reused")
}

func TestExpiredTokenWithBadRefresh(t *testing.T) {
	f := &fakeServer{expired: map[string]bool{"access-x": true}}
	c := startFake(t, f)
	c.SetTokens("access-x", "refresh-x")

	err := c.SetDocument(context.Background(), "users/u1/workouts/2024-06-10", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.refreshes)
}

func TestSetDocument_NotAnObject(t *testing.T) {
	c := startFake(t, &fakeServer{})
	assert.Error(t, c.SetDocument(context.Background(), "users/u1/workouts/x", []byte(`"str"`)))
}
