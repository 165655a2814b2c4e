package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dmitrijs2005/gymkeeper/internal/client/models"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	pb "github.com/dmitrijs2005/gymkeeper/internal/proto"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	auth        pb.AuthClient
	docs        pb.DocumentsClient
	log         logging.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRefresh    func(accessToken, refreshToken string)
}

var _ Client = (*GRPCClient)(nil)

// NewGRPCClient prepares a lazy connection to endpointURL. Extra dial
// options are appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, log: logging.Discard()}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.auth = pb.NewAuthClient(conn)
	c.docs = pb.NewDocumentsClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := c.tokens()
	if access == "" || method == pb.Auth_Refresh_FullMethodName {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := c.auth.Refresh(ctx, pb.RefreshRequest{RefreshToken: refresh}.Struct())
	if rerr != nil {
		return err
	}
	session := pb.SessionFrom(resp)
	c.SetTokens(session.AccessToken, session.RefreshToken)

	c.mu.RLock()
	notify := c.onRefresh
	c.mu.RUnlock()
	if notify != nil {
		notify(session.AccessToken, session.RefreshToken)
	}

	return invoker(withAccessToken(ctx, session.AccessToken), method, req, reply, cc, opts...)
}

// SetLogger replaces the discarding default logger.
func (c *GRPCClient) SetLogger(l logging.Logger) {
	c.log = l
}

// SetTokens installs a session's tokens, e.g. one restored from disk.
// Empty strings clear them.
func (c *GRPCClient) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	c.mu.Unlock()
}

// OnTokensRefreshed registers fn to receive rotated tokens so they can be
// persisted.
func (c *GRPCClient) OnTokensRefreshed(fn func(accessToken, refreshToken string)) {
	c.mu.Lock()
	c.onRefresh = fn
	c.mu.Unlock()
}

func (c *GRPCClient) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	resp, err := c.auth.SignUp(ctx, pb.Credentials{Email: email, Password: password}.Struct())
	if err != nil {
		return models.Identity{}, c.mapError(err)
	}
	s := pb.SessionFrom(resp)
	return models.Identity{UserID: s.UserID, Email: s.Email}, nil
}

// SignIn authenticates and keeps the returned tokens for later calls.
func (c *GRPCClient) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	resp, err := c.auth.SignIn(ctx, pb.Credentials{Email: email, Password: password}.Struct())
	if err != nil {
		return models.Session{}, c.mapError(err)
	}
	s := pb.SessionFrom(resp)
	c.SetTokens(s.AccessToken, s.RefreshToken)
	return models.Session{
		UserID:       s.UserID,
		Email:        s.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}, nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	if _, err := c.auth.Ping(ctx, &emptypb.Empty{}); err != nil {
		return c.mapError(err)
	}
	return nil
}

// SetDocument replaces the document at path with data, a JSON object.
func (c *GRPCClient) SetDocument(ctx context.Context, path string, data []byte) error {
	req, err := pb.Document{Path: path, Data: data}.Struct()
	if err != nil {
		return err
	}
	if _, err := c.docs.SetDocument(ctx, req); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *GRPCClient) ListDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	resp, err := c.docs.ListDocuments(ctx, pb.ListRequest{Collection: collection}.Struct())
	if err != nil {
		return nil, c.mapError(err)
	}

	list, skipped := pb.DocumentListFrom(resp)
	if skipped > 0 {
		c.log.Warn(ctx, "dropped malformed documents from list", "collection", collection, "skipped", skipped)
	}
	out := make([]models.Document, 0, len(list))
	for _, d := range list {
		out = append(out, models.Document{Path: d.Path, Data: d.Data})
	}
	return out, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrUnavailable
		}
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", st.Message(), common.ErrValidation)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
