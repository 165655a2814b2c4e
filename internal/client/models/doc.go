// Package models defines the client-side records shared by the transport,
// the auth service and the sync gateway.
package models
