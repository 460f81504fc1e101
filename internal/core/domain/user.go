package domain

import (
	"errors"
	"regexp"
	"time"
)

// Role is the closed set of permission classes a user can hold.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleMerchantManager Role = "merchantManager"
	RoleCategoryManager Role = "categoryManager"
	RoleEmployee        Role = "employee"
)

// ParseRole maps a raw string onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMerchantManager:
		return RoleMerchantManager, nil
	case RoleCategoryManager:
		return RoleCategoryManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", ErrInvalidRole
}

// Status is the account lifecycle state. Blocked users are rejected at
// login even with correct credentials.
type Status string

const (
	StatusActive  Status = "Active"
	StatusBlocked Status = "Blocked"
)

// ParseStatus maps a raw string onto the closed status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive:
		return StatusActive, nil
	case StatusBlocked:
		return StatusBlocked, nil
	}
	return "", ErrInvalidStatus
}

// usernamePattern is the corporate address rule: every account name must end
// with the goods.ru domain.
var usernamePattern = regexp.MustCompile(`^.+@goods\.ru$`)

// ValidUsername reports whether the username satisfies the corporate address rule.
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

var (
	ErrInvalidUsername    = errors.New("username must be a goods.ru address")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrEmptyName          = errors.New("first and last name are required")
	ErrInvalidRole        = errors.New("unknown role")
	ErrInvalidStatus      = errors.New("unknown status")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
)

// User is the sole persisted entity: a panel account.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
