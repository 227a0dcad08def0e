package models

import "time"

// User is a registered account. PasswordHash is the bcrypt-derived value;
// the plaintext password is never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
