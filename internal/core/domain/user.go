package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var ErrUserExists = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidUserInput = errors.New("username must be 3-30 characters and password at least 6 characters")

// User models an authenticated actor in the system. Public registration always
// produces an editor; admins are provisioned out of band.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthorRef is the projection of a user embedded in article reads.
type AuthorRef struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
