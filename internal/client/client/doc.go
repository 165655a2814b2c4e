// Package client is the gymkeeper client's connection to the server.
//
// GRPCClient speaks the gymkeeper.v1 Auth and Documents services. It keeps
// the session tokens, attaches the access token to every call and, when the
// server answers "token expired", refreshes the pair once and retries.
// gRPC status codes are mapped to the sentinel errors in errors.go.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
