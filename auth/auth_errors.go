package auth

// Client facing messages. Authentication failures share one message so callers
// cannot tell an unknown subject from a bad signature.
const (
	MissingFieldsMsg     = "username, email and password are required"
	MissingLoginMsg      = "email and password are required"
	InvalidRoleMsg       = "role must be one of: seller, buyer"
	InvalidEmailMsg      = "email is not valid"
	ShortPasswordMsg     = "password must be at least 8 characters long"
	LongPasswordMsg      = "password must be at most 72 bytes long"
	EmptyUsernameMsg     = "username cannot be empty"
	NothingToUpdateMsg   = "nothing to update"
	DuplicateIdentityMsg = "email or username already in use"
	UserNotFoundMsg      = "user not found"
	InvalidUserIDMsg     = "invalid user id"
	InvalidCredentialMsg = "invalid credentials"
	SessionInvalidMsg    = "session invalid"
)
