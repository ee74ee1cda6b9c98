package domain

import (
	"errors"
	"time"
)

// User represents a banking customer or staff member.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Active       bool
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin has full access including other customers' documents
	RoleAdmin Role = "admin"

	// RoleCustomer can view and export their own accounts and deposits
	RoleCustomer Role = "customer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleCustomer: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanViewAll checks if the role can view resources of any customer.
func (r Role) CanViewAll() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
