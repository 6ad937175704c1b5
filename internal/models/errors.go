package models

// AuthenticationError means the caller's identity is missing or wrong for a
// gated operation. It is surfaced to the caller verbatim and never logged
// as a server fault.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ErrNotLoggedIn gates the me query.
func ErrNotLoggedIn() error {
	return &AuthenticationError{Message: "Not logged in"}
}

// ErrIncorrectCredentials is returned by login for an unknown email and for
// a wrong password alike; the two cases stay indistinguishable to the caller.
func ErrIncorrectCredentials() error {
	return &AuthenticationError{Message: "Incorrect credentials"}
}

// ErrLoginRequired gates the state-changing mutations.
func ErrLoginRequired() error {
	return &AuthenticationError{Message: "You need to be logged in!"}
}

// ValidationError means a schema constraint was violated on write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
