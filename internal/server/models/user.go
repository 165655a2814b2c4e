package models

import "time"

// User is a registered account. Email is unique and stored lowercased.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
