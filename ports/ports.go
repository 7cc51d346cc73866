// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/beevik/etree"
	"github.com/stonefield/jiraSOAP/domain/auth"
	"github.com/stonefield/jiraSOAP/domain/message"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Remote Service Ports
// -----------------------------------------------------------------------------

// Transport delivers one call to the remote service and returns the parsed
// response document.
//
// Implementations own timeouts and cancellation (through ctx). A fault
// reported by the service is returned as *message.ProviderFault; anything
// below the RPC layer as *message.TransportError.
type Transport interface {
	Call(ctx context.Context, call *message.Call) (*etree.Document, error)
}

// CallObserver is notified once per dispatched call, after it completes.
// err is nil on success.
type CallObserver interface {
	ObserveCall(method string, elapsed time.Duration, err error)
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// SessionStore persists login sessions between process runs, one per endpoint.
type SessionStore interface {
	// Load returns the session saved for endpoint, or ErrNotFound.
	Load(ctx context.Context, endpoint string) (auth.Session, error)

	// Save stores s, replacing any session for the same endpoint.
	Save(ctx context.Context, s auth.Session) error

	// Delete removes the session for endpoint. Deleting a missing session is not an error.
	Delete(ctx context.Context, endpoint string) error
}

// SessionLister is implemented by session stores that can enumerate every
// saved session.
type SessionLister interface {
	List(ctx context.Context) ([]auth.Session, error)
}
