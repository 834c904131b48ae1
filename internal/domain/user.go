package domain

import "time"

// User represents a registered account. Username is unique, stored lowercase
// and immutable after creation; DisplayName is unique and human-facing.
type User struct {
	ID             int64
	Username       string
	DisplayName    string
	PasswordHash   string
	ProfilePicture string
	RegisterDate   time.Time
}
