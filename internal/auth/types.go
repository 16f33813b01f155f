package auth

// AuthError is a structured authentication error with a stable code.
type AuthError struct {
	Code    string
	Message string
}

func (e AuthError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized = AuthError{Code: "UNAUTHORIZED", Message: "authentication required"}
	ErrInvalidToken = AuthError{Code: "INVALID_TOKEN", Message: "invalid access token"}
	ErrTokenExpired = AuthError{Code: "TOKEN_EXPIRED", Message: "access token expired"}
)
