package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the identity record stored in PostgreSQL. Emails are always stored
// lowercased. Nick keeps the case the user typed, but uniqueness is
// case-insensitive through an expression index on LOWER(nick) created at
// migration time.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Surname   string    `json:"surname,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Nick      string    `json:"nick" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"default:role_user"`
	Image     string    `json:"image" gorm:"default:default.png"`
	Cover     string    `json:"cover" gorm:"default:default-cover.png"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile is the projection of a user embedded in feeds, follow lists
// and token payloads.
type PublicProfile struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`
	Nick    string `json:"nick"`
	Role    string `json:"role"`
	Image   string `json:"image"`
}

// ToPublic returns the user's public profile fields.
func (u *User) ToPublic() PublicProfile {
	return PublicProfile{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Nick:    u.Nick,
		Role:    u.Role,
		Image:   u.Image,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Surname  string `json:"surname,omitempty" validate:"omitempty,max=50"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Nick     string `json:"nick" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Surname string `json:"surname,omitempty" validate:"omitempty,max=50"`
	Bio     string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Nick    string `json:"nick,omitempty" validate:"omitempty,min=2,max=30"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// The payload mirrors the public profile so clients can render the session
// user without an extra round trip.
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`
	Nick    string `json:"nick"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Image   string `json:"image"`
	jwt.RegisteredClaims
}
