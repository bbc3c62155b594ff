// Package models defines the records persisted by the repositories and
// returned by the REST layer.
package models

// User is a stored credential. PasswordHash holds the hasher's digest, never
// the plaintext.
type User struct {
	ID           int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	PasswordHash string `json:"password_hash"`
}
