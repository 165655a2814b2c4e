package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	AuthServiceName      = "gymkeeper.v1.Auth"
	DocumentsServiceName = "gymkeeper.v1.Documents"

	Auth_SignUp_FullMethodName             = "/gymkeeper.v1.Auth/SignUp"
	Auth_SignIn_FullMethodName             = "/gymkeeper.v1.Auth/SignIn"
	Auth_Refresh_FullMethodName            = "/gymkeeper.v1.Auth/Refresh"
	Auth_Ping_FullMethodName               = "/gymkeeper.v1.Auth/Ping"
	Documents_SetDocument_FullMethodName   = "/gymkeeper.v1.Documents/SetDocument"
	Documents_ListDocuments_FullMethodName = "/gymkeeper.v1.Documents/ListDocuments"
)

// AuthServer is the server API for the Auth service.
type AuthServer interface {
	SignUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Refresh(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// DocumentsServer is the server API for the Documents service.
type DocumentsServer interface {
	SetDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListDocuments(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// unaryHandler adapts a typed method to grpc.MethodHandler, running the
// server's interceptor chain when one is installed.
func unaryHandler[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unaryHandler(Auth_SignUp_FullMethodName, AuthServer.SignUp)},
		{MethodName: "SignIn", Handler: unaryHandler(Auth_SignIn_FullMethodName, AuthServer.SignIn)},
		{MethodName: "Refresh", Handler: unaryHandler(Auth_Refresh_FullMethodName, AuthServer.Refresh)},
		{MethodName: "Ping", Handler: unaryHandler(Auth_Ping_FullMethodName, AuthServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gymkeeper/v1/gymkeeper.proto",
}

var Documents_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DocumentsServiceName,
	HandlerType: (*DocumentsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SetDocument", Handler: unaryHandler(Documents_SetDocument_FullMethodName, DocumentsServer.SetDocument)},
		{MethodName: "ListDocuments", Handler: unaryHandler(Documents_ListDocuments_FullMethodName, DocumentsServer.ListDocuments)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gymkeeper/v1/gymkeeper.proto",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

func RegisterDocumentsServer(s grpc.ServiceRegistrar, srv DocumentsServer) {
	s.RegisterService(&Documents_ServiceDesc, srv)
}

// AuthClient is the client API for the Auth service.
type AuthClient interface {
	SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Refresh(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, Auth_SignUp_FullMethodName, in, opts...)
}

func (c *authClient) SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, Auth_SignIn_FullMethodName, in, opts...)
}

func (c *authClient) Refresh(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, Auth_Refresh_FullMethodName, in, opts...)
}

func (c *authClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Auth_Ping_FullMethodName, in, opts...)
}

// DocumentsClient is the client API for the Documents service.
type DocumentsClient interface {
	SetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type documentsClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentsClient(cc grpc.ClientConnInterface) DocumentsClient {
	return &documentsClient{cc}
}

func (c *documentsClient) SetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Documents_SetDocument_FullMethodName, in, opts...)
}

func (c *documentsClient) ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, Documents_ListDocuments_FullMethodName, in, opts...)
}
