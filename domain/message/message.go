// Package message defines the outbound call representation and the error
// values shared by the dispatcher and its transports.
// This package has NO dependencies on I/O.
package message

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Call is one outbound remote invocation: a method name plus its positional
// parameter slots (in0, in1, ...), already encoded.
type Call struct {
	// ID correlates the call in logs and transport headers.
	ID string

	Method string
	Params []*etree.Element
}

// SlotName returns the wire name of the i-th positional parameter.
func SlotName(i int) string {
	return fmt.Sprintf("in%d", i)
}

// TransportError is a failure below the RPC layer: connection, HTTP status,
// unreadable body.
type TransportError struct {
	Method     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s: status %d: %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderFault is a fault reported by the remote service. Message carries the
// fault string exactly as received.
type ProviderFault struct {
	Method  string
	Code    string
	Message string
	Detail  string
}

func (e *ProviderFault) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("fault %s: %s: %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("fault %s: %s", e.Method, e.Message)
}

// IsFault returns true if err is or wraps a ProviderFault.
func IsFault(err error) bool {
	var f *ProviderFault
	return errors.As(err, &f)
}

// IsTransport returns true if err is or wraps a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}
