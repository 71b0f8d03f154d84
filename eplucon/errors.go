package eplucon

import "fmt"

// AuthError means the portal rejected the API token (envelope auth=false).
// Callers should treat this as a bad credential, not a transient outage.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("eplucon: authentication failed: %v", e.Message)
}

// ProtocolError covers non-200 responses and responses missing the auth
// envelope key. StatusCode is 0 when the status itself was fine.
type ProtocolError struct {
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("eplucon: api returned status %v", e.StatusCode)
	}

	return fmt.Sprintf("eplucon: %v", e.Message)
}

// DecodeError means the response body did not match the expected DTO shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("eplucon: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
