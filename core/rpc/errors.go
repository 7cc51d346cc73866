package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse is returned when the response document does not
	// reach the method response element.
	ErrMalformedResponse = errors.New("rpc: malformed response envelope")

	// ErrNotLoggedIn is returned by authenticated calls before anything is
	// sent when the session holds no token.
	ErrNotLoggedIn = errors.New("rpc: not logged in")
)

// EmptyResponseError is returned by SingleCall when the method response
// carries no return value.
type EmptyResponseError struct {
	Method string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("rpc %s: empty response", e.Method)
}
