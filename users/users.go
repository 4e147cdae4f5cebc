package users

import (
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of access roles a user can hold
type Role string

const (
	RoleSeller Role = "seller" // Can create, update and delete products
	RoleBuyer  Role = "buyer"  // Can read products

	DefaultRole = RoleBuyer
)

// ParseRole converts a raw value into a Role, rejecting anything outside the enum
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleSeller, RoleBuyer:
		return r, nil
	}
	return "", InvalidRoleErr
}

func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleBuyer
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	Role         Role      `json:"role"`
	CreatedBy    string    `json:"createdBy"`
	UpdatedBy    string    `json:"updatedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SafeUser is the projection of a User returned to clients
type SafeUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedBy string    `json:"createdBy"`
	UpdatedBy string    `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedBy: u.CreatedBy,
		UpdatedBy: u.UpdatedBy,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NormaliseEmail trims and lowercases an address; emails are stored in this form
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormaliseUsername(username string) string {
	return strings.TrimSpace(username)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the most bcrypt will hash
	MaxPasswordBytes = 72
)

func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordBytes
}
