package entity

import "time"

// User is an account identity. Password holds the stored digest
// (credential.StoredDigest output); the plaintext secret is never persisted
// or logged. Email is unique across all users.
type User struct {
	ID        string
	Email     string
	Password  string // 40-hex stored digest
	Name      string
	Image     string
	Admin     bool
	CreatedAt time.Time
}
