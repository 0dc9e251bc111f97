package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserView is the public projection of a User. It is the only shape
// handlers are allowed to serialize, so the password hash cannot leak
// through a newly added endpoint.
type UserView struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Active: u.Active}
}

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// RoleAdmin is the only role with elevated permissions.
const RoleAdmin = "admin"

// Claims defines the structure of the JWT claims.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// UpdateUserInput leaves absent fields untouched. A new password is
// re-hashed; the stored hash is kept otherwise.
type UpdateUserInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50"`
	Password *string `json:"password" binding:"omitempty,password"`
}

type AssignRoleInput struct {
	Role string `json:"role" binding:"required,min=1,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}
