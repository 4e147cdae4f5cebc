package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/jrsteele09/go-storefront-api/internal/utils"
	"github.com/jrsteele09/go-storefront-api/token"
	"github.com/jrsteele09/go-storefront-api/users"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
	DefaultSystemUser = "system"
)

// AccountService registers users, authenticates them and manages their sessions and profiles.
type AccountService struct {
	users        users.UserRepo
	hasher       users.Hasher
	tokens       *token.Manager
	sessionTTL   time.Duration
	refreshTTL   time.Duration
	systemUserID string
	nowTime      func() time.Time
}

// AccountServiceOption defines a function type to modify the AccountService instance.
type AccountServiceOption func(*AccountService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AccountServiceOption {
	return func(as *AccountService) {
		as.nowTime = nowFunc
	}
}

// WithTokenTTLs overrides the login and refresh token lifetimes
func WithTokenTTLs(session, refresh time.Duration) AccountServiceOption {
	return func(as *AccountService) {
		if session > 0 {
			as.sessionTTL = session
		}
		if refresh > 0 {
			as.refreshTTL = refresh
		}
	}
}

// WithSystemUserID sets the identity recorded as creator of self-registered accounts
func WithSystemUserID(id string) AccountServiceOption {
	return func(as *AccountService) {
		if id != "" {
			as.systemUserID = id
		}
	}
}

func NewAccountService(
	userRepo users.UserRepo,
	hasher users.Hasher,
	tokens *token.Manager,
	options ...AccountServiceOption,
) (*AccountService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewAccountService] users repo is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewAccountService] hasher is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewAccountService] token manager is required")
	}

	as := &AccountService{
		users:        userRepo,
		hasher:       hasher,
		tokens:       tokens,
		sessionTTL:   DefaultSessionTTL,
		refreshTTL:   DefaultRefreshTTL,
		systemUserID: DefaultSystemUser,
		nowTime:      time.Now,
	}
	for _, opt := range options {
		opt(as)
	}
	return as, nil
}

// Register creates a new identity. The plaintext password is never logged or stored.
func (as *AccountService) Register(ctx context.Context, params RegisterParameters) (users.SafeUser, error) {
	params.normalise()
	role, err := params.validate()
	if err != nil {
		return users.SafeUser{}, err
	}

	log.Info().
		Str("username", params.Username).
		Str("email", params.Email).
		Str("role", role.String()).
		Msg("registering user")

	hash, err := as.hasher.Hash(params.Password)
	if err != nil {
		return users.SafeUser{}, apperrors.Internal("could not register user", err)
	}

	now := as.nowTime().UTC()
	user := &users.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedBy:    as.systemUserID,
		UpdatedBy:    as.systemUserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := as.users.Create(ctx, user); err != nil {
		return users.SafeUser{}, userRepoError(err, "[Register] create user")
	}
	return user.Safe(), nil
}

// Login checks credentials and issues a session token
func (as *AccountService) Login(ctx context.Context, params LoginParameters) (LoginResult, error) {
	if err := params.validate(); err != nil {
		return LoginResult{}, err
	}

	user, err := as.users.GetByEmail(ctx, params.Email)
	if err != nil {
		return LoginResult{}, userRepoError(err, "[Login] get user")
	}
	if !as.hasher.Verify(params.Password, user.PasswordHash) {
		return LoginResult{}, apperrors.Authentication(InvalidCredentialMsg)
	}

	raw, err := as.issue(user, as.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: raw, User: user.Safe()}, nil
}

// VerifySession confirms the token subject still exists. With refresh set, a longer
// lived token is issued from the stored identity rather than from the presented claims.
func (as *AccountService) VerifySession(ctx context.Context, claims token.Claims, refresh bool) (SessionResult, error) {
	user, err := as.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, users.UserNotFoundErr) || errors.Is(err, users.InvalidIDErr) {
			return SessionResult{}, apperrors.Authentication(SessionInvalidMsg)
		}
		return SessionResult{}, apperrors.Internal("could not verify session", err)
	}

	result := SessionResult{Valid: true, User: user.Safe()}
	if refresh {
		if result.Token, err = as.issue(user, as.refreshTTL); err != nil {
			return SessionResult{}, err
		}
	}
	return result, nil
}

// UpdateProfile applies a partial update to the identity with the given id
func (as *AccountService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (users.SafeUser, error) {
	if err := update.validate(); err != nil {
		return users.SafeUser{}, err
	}

	user, err := as.users.GetByID(ctx, id)
	if err != nil {
		return users.SafeUser{}, userRepoError(err, "[UpdateProfile] get user")
	}

	user.Username = utils.ValueOr(update.Username, user.Username)
	user.Email = utils.ValueOr(update.Email, user.Email)
	if update.Password != nil {
		hash, err := as.hasher.Hash(*update.Password)
		if err != nil {
			return users.SafeUser{}, apperrors.Internal("could not update user", err)
		}
		user.PasswordHash = hash
	}
	if by := utils.Value(update.UpdatedBy); by != "" {
		user.UpdatedBy = by
	}
	user.UpdatedAt = as.nowTime().UTC()

	if err := as.users.Update(ctx, user); err != nil {
		return users.SafeUser{}, userRepoError(err, "[UpdateProfile] update user")
	}
	return user.Safe(), nil
}

func (as *AccountService) issue(user *users.User, ttl time.Duration) (string, error) {
	raw, err := as.tokens.Issue(token.Claims{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}, ttl)
	if err != nil {
		return "", apperrors.Internal("could not issue token", err)
	}
	return raw, nil
}

// userRepoError classifies a store failure into the service error taxonomy
func userRepoError(err error, op string) error {
	switch {
	case errors.Is(err, users.UserNotFoundErr):
		return apperrors.NotFound(UserNotFoundMsg)
	case errors.Is(err, users.DuplicateUserErr):
		return apperrors.Validation(DuplicateIdentityMsg)
	case errors.Is(err, users.InvalidIDErr):
		return apperrors.Validation(InvalidUserIDMsg)
	default:
		return apperrors.Internal("storage failure", apperrors.Wrapf(err, "%s", op))
	}
}
