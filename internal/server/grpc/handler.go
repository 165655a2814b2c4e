package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dmitrijs2005/gymkeeper/internal/common"
	pb "github.com/dmitrijs2005/gymkeeper/internal/proto"
)

// toStatus maps service errors to gRPC statuses. Unexpected errors are
// logged and hidden behind Internal.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	default:
		s.logger.Error(ctx, op+" failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	creds := pb.CredentialsFrom(req)

	user, err := s.users.SignUp(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "sign up", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return pb.Session{UserID: user.ID, Email: user.Email}.Struct(), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	creds := pb.CredentialsFrom(req)

	user, tokens, err := s.users.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "sign in", err)
	}

	return pb.Session{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}.Struct(), nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	tokens, err := s.users.RefreshToken(ctx, pb.RefreshRequestFrom(req).RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh", err)
	}

	return pb.Session{
		UserID:       tokens.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}.Struct(), nil
}

func (s *GRPCServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) SetDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	doc, err := pb.DocumentFrom(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.documents.Set(ctx, userID, doc.Path, doc.Data); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.PermissionDenied, "permission denied")
		}
		return nil, s.toStatus(ctx, "set document", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	docs, err := s.documents.List(ctx, userID, pb.ListRequestFrom(req).Collection)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.PermissionDenied, "permission denied")
		}
		return nil, s.toStatus(ctx, "list documents", err)
	}

	list := make(pb.DocumentList, 0, len(docs))
	for _, d := range docs {
		list = append(list, pb.Document{Path: d.Path, Data: d.Data})
	}
	resp, skipped := list.Struct()
	for _, err := range skipped {
		s.logger.Warn(ctx, "skipping undecodable document", "user", userID, "error", err)
	}
	return resp, nil
}
