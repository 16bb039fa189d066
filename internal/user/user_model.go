package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account. Password is never serialized out; TokenVersion is
// the per-user counter embedded in issued tokens, bumped to invalidate
// every outstanding session at once.
type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Email        string `gorm:"unique;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:'user'" json:"role"`
	TokenVersion int    `gorm:"not null;default:0" json:"-"`
}

// UserResponse is the wire shape of a user record.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse maps a persisted user to its wire shape.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
