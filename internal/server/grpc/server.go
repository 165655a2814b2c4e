// Package grpc exposes the user and document services over gRPC: the
// gymkeeper.v1.Auth and gymkeeper.v1.Documents services.
package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/gymkeeper/internal/logging"
	pb "github.com/dmitrijs2005/gymkeeper/internal/proto"
	"github.com/dmitrijs2005/gymkeeper/internal/server/services"
)

type GRPCServer struct {
	address   string
	users     *services.UserService
	documents *services.DocumentService
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, ds *services.DocumentService) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
	}
}

// NewServer builds a grpc.Server with both services and the interceptor
// chain registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAuthServer(srv, s)
	pb.RegisterDocumentsServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		srv.Stop()
		return err
	}
	<-stopped
	return nil
}
