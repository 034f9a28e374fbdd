package models

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// Valid reports whether r is one of the two registered roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleUser
}

// User is a registered identity. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// UserSummary is the assignee view embedded in tasks.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

const (
	minPasswordLength = 6
	// bcrypt rejects longer inputs
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

func (in *RegisterInput) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < minPasswordLength {
		return BadRequestf("password must be at least %d characters", minPasswordLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return BadRequestf("password must be at most %d bytes", maxPasswordBytes)
	}
	if in.Name == "" {
		return BadRequestf("name is required")
	}
	if !in.Role.Valid() {
		return BadRequestf("role must be one of: %s, %s", RoleManager, RoleUser)
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return BadRequestf("password is required")
	}
	return nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (in *ChangePasswordInput) Validate() error {
	if in.CurrentPassword == "" {
		return BadRequestf("currentPassword is required")
	}
	if len(in.NewPassword) < minPasswordLength {
		return BadRequestf("newPassword must be at least %d characters", minPasswordLength)
	}
	if len(in.NewPassword) > maxPasswordBytes {
		return BadRequestf("newPassword must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return BadRequestf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return BadRequestf("invalid email address")
	}
	return nil
}
