package models

import "time"

// RefreshToken is a server-side refresh token record. Only the digest of
// the token is stored.
type RefreshToken struct {
	UserID    string
	Digest    string
	Expires   time.Time
	CreatedAt time.Time
}
