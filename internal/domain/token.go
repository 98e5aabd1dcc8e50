package domain

// TokenKind tells apart the three kinds of signed tokens the service issues
type TokenKind string

const (
	TokenKindAccess       TokenKind = "access_token"
	TokenKindRefresh      TokenKind = "refresh_token"
	TokenKindEmailConfirm TokenKind = "email_token"
)

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int `json:"expires_in"`
}

// ConfirmationResult is the outcome of an email confirmation attempt
type ConfirmationResult int

const (
	ConfirmConfirmed ConfirmationResult = iota
	ConfirmAlreadyConfirmed
	ConfirmRequested
)

// Message returns the user facing text of the result
func (r ConfirmationResult) Message() string {
	switch r {
	case ConfirmAlreadyConfirmed:
		return "Your email is already confirmed"
	case ConfirmRequested:
		return "Check your email for confirmation"
	default:
		return "Email confirmed"
	}
}
