package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is one entry of the closed role enumeration.
type Role string

const (
	RoleCandidate  Role = "CANDIDATE"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// MaxRoles bounds the number of roles a single account may hold.
const MaxRoles = 4

// RoleSet is the bounded set of roles attached to an account.
// Stored as a JSON column so membership stays a simple slice scan.
type RoleSet []Role

func DefaultRoles() RoleSet {
	return RoleSet{RoleCandidate}
}

func (rs RoleSet) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Valid reports whether the set is non-empty, within bounds and
// contains only known roles without duplicates.
func (rs RoleSet) Valid() bool {
	if len(rs) == 0 || len(rs) > MaxRoles {
		return false
	}
	seen := make(map[Role]bool, len(rs))
	for _, r := range rs {
		switch r {
		case RoleCandidate, RoleAdmin, RoleSuperAdmin:
		default:
			return false
		}
		if seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func (rs RoleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHashed string    `gorm:"type:varchar(255);not null" json:"-"`
	Firstname      string    `gorm:"type:varchar(255)" json:"firstname"`
	Lastname       string    `gorm:"type:varchar(255)" json:"lastname"`
	ImageURL       *string   `gorm:"type:varchar(255)" json:"image,omitempty"`
	Phone          *string   `gorm:"type:varchar(17)" json:"phone,omitempty"`
	Roles          RoleSet   `gorm:"serializer:json;not null" json:"roles"`
	Verified       bool      `gorm:"default:false" json:"verified"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName is the display name embedded in access token claims.
func (u *User) FullName() string {
	switch {
	case u.Firstname == "":
		return u.Lastname
	case u.Lastname == "":
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}
