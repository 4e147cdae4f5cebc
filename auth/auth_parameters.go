package auth

import (
	"github.com/jrsteele09/go-storefront-api/users"
)

// RegisterParameters is the self-registration request
type RegisterParameters struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // Empty defaults to buyer
}

type LoginParameters struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries a partial update. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	UpdatedBy *string `json:"updatedBy,omitempty"`
}

// Empty reports whether no profile field was supplied. UpdatedBy is attribution only.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil
}

type LoginResult struct {
	Token string         `json:"token"`
	User  users.SafeUser `json:"user"`
}

type SessionResult struct {
	Valid bool           `json:"valid"`
	User  users.SafeUser `json:"user"`
	Token string         `json:"token,omitempty"` // Set only when a refresh was requested
}
