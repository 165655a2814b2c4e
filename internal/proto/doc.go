// Package proto defines the gymkeeper.v1 gRPC API.
//
// The services are described by hand-maintained grpc.ServiceDesc values and
// carry well-known message types only: requests and responses are
// google.protobuf.Struct (or Empty), built and read through the typed
// helpers in messages.go. No protoc step is needed to build the module.
package proto
