package auth

import (
	"strings"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/jrsteele09/go-storefront-api/internal/utils"
	"github.com/jrsteele09/go-storefront-api/users"
)

// normalise trims identity fields and lowercases the email in place
func (p *RegisterParameters) normalise() {
	p.Username = users.NormaliseUsername(p.Username)
	p.Email = users.NormaliseEmail(p.Email)
}

// validate assumes normalise has run and resolves the requested role
func (p *RegisterParameters) validate() (users.Role, error) {
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return "", apperrors.Validation(MissingFieldsMsg)
	}
	if !users.ValidEmail(p.Email) {
		return "", apperrors.Validation(InvalidEmailMsg)
	}
	if err := passwordError(p.Password); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Role) == "" {
		return users.DefaultRole, nil
	}
	role, err := users.ParseRole(p.Role)
	if err != nil {
		return "", apperrors.Validation(InvalidRoleMsg)
	}
	return role, nil
}

func (p *LoginParameters) validate() error {
	p.Email = users.NormaliseEmail(p.Email)
	if p.Email == "" || p.Password == "" {
		return apperrors.Validation(MissingLoginMsg)
	}
	return nil
}

// validate normalises the supplied fields in place. Emptiness is checked before anything else.
func (p *ProfileUpdate) validate() error {
	if p.Empty() {
		return apperrors.Validation(NothingToUpdateMsg)
	}
	p.Username = utils.MapPtr(p.Username, users.NormaliseUsername)
	if p.Username != nil && *p.Username == "" {
		return apperrors.Validation(EmptyUsernameMsg)
	}
	p.Email = utils.MapPtr(p.Email, users.NormaliseEmail)
	if p.Email != nil && !users.ValidEmail(*p.Email) {
		return apperrors.Validation(InvalidEmailMsg)
	}
	if p.Password != nil {
		if err := passwordError(*p.Password); err != nil {
			return err
		}
	}
	return nil
}

func passwordError(password string) error {
	switch {
	case users.ValidPassword(password):
		return nil
	case len(password) > users.MaxPasswordBytes:
		return apperrors.Validation(LongPasswordMsg)
	default:
		return apperrors.Validation(ShortPasswordMsg)
	}
}
