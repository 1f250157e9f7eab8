package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrUserExists         = errors.New("identity: user already exists")
	ErrUserNotFound       = errors.New("identity: user not found")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrUnauthorized       = errors.New("identity: unauthorized")
	ErrMissingField       = errors.New("identity: missing required field")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	Role         Role
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// Session is the validated caller record handed to the rest of the system.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
