package models

import "time"

// User represents a faculty account stored in the users table. Accounts are
// immutable once created; there are no update or delete routes.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Info projects the public fields of a user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email}
}
