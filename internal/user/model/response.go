package model

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Phone     *string   `json:"phone,omitempty"`
	ImageURL  *string   `json:"image,omitempty"`
	Roles     []string  `json:"roles"`
	Verified  bool      `json:"verified"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
}

func (u *User) ToResponse() *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Phone:     u.Phone,
		ImageURL:  u.ImageURL,
		Roles:     u.Roles.Strings(),
		Verified:  u.Verified,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
