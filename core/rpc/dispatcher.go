// Package rpc builds remote calls, sends them through a ports.Transport and
// turns the return value into entities.
package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stonefield/jiraSOAP/core/entity"
	"github.com/stonefield/jiraSOAP/domain/message"
	"github.com/stonefield/jiraSOAP/ports"
)

// Dispatcher sends calls for one session. Every operation blocks until the
// transport returns; nothing is retried.
type Dispatcher struct {
	transport ports.Transport
	session   *Session
	observer  ports.CallObserver
	idGen     ports.IDGenerator
	clock     ports.Clock
	logger    zerolog.Logger
}

// Deps contains dependencies for Dispatcher. Only Transport is required.
type Deps struct {
	Transport ports.Transport
	Session   *Session
	Observer  ports.CallObserver
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	Logger    zerolog.Logger
}

type uuidGen struct{}

func (uuidGen) New() string { return uuid.NewString() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewDispatcher creates a dispatcher. A nil Session starts logged out.
func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{
		transport: deps.Transport,
		session:   deps.Session,
		observer:  deps.Observer,
		idGen:     deps.IDGen,
		clock:     deps.Clock,
		logger:    deps.Logger.With().Str("component", "rpc").Logger(),
	}
	if d.session == nil {
		d.session = NewSession()
	}
	if d.idGen == nil {
		d.idGen = uuidGen{}
	}
	if d.clock == nil {
		d.clock = systemClock{}
	}
	return d
}

// Session returns the session whose token authenticated calls forward.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// BuildCall encodes args into positional slots in0..inN.
func (d *Dispatcher) BuildCall(method string, args ...Arg) *message.Call {
	call := &message.Call{
		ID:     d.idGen.New(),
		Method: method,
		Params: make([]*etree.Element, len(args)),
	}
	for i, arg := range args {
		slot := etree.NewElement(message.SlotName(i))
		arg.encode(slot)
		call.Params[i] = slot
	}
	return call
}

// Invoke sends an unauthenticated call and extracts the return value.
func (d *Dispatcher) Invoke(ctx context.Context, method string, args ...Arg) (NodeSet, error) {
	call := d.BuildCall(method, args...)
	log := d.logger.With().Str("request_id", call.ID).Str("method", method).Logger()

	start := d.clock.Now()
	log.Debug().Int("params", len(call.Params)).Msg("sending call")

	doc, err := d.transport.Call(ctx, call)
	var ns NodeSet
	if err == nil {
		ns, err = Extract(doc)
	}
	elapsed := d.clock.Now().Sub(start)

	if d.observer != nil {
		d.observer.ObserveCall(method, elapsed, err)
	}

	if err != nil {
		var fault *message.ProviderFault
		if errors.As(err, &fault) {
			log.Warn().Str("fault_code", fault.Code).Str("fault", fault.Message).Dur("elapsed", elapsed).Msg("remote fault")
		} else {
			log.Debug().Err(err).Dur("elapsed", elapsed).Msg("call failed")
		}
		return nil, err
	}

	log.Debug().Bool("empty", ns.Empty()).Dur("elapsed", elapsed).Msg("call complete")
	return ns, nil
}

// authenticated invokes method with the session token as in0.
func (d *Dispatcher) authenticated(ctx context.Context, method string, args []Arg) (NodeSet, error) {
	token := d.session.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	full := make([]Arg, 0, len(args)+1)
	full = append(full, String(token))
	full = append(full, args...)
	return d.Invoke(ctx, method, full...)
}

// SingleCall invokes an authenticated method and returns its return value.
func (d *Dispatcher) SingleCall(ctx context.Context, method string, args ...Arg) (*etree.Element, error) {
	ns, err := d.authenticated(ctx, method, args)
	if err != nil {
		return nil, err
	}
	if ns.Empty() {
		return nil, &EmptyResponseError{Method: method}
	}
	return ns.First(), nil
}

// OptionalCall is SingleCall for methods that may legitimately return
// nothing; it yields (nil, nil) in that case.
func (d *Dispatcher) OptionalCall(ctx context.Context, method string, args ...Arg) (*etree.Element, error) {
	ns, err := d.authenticated(ctx, method, args)
	if err != nil {
		return nil, err
	}
	return ns.First(), nil
}

// SingleEntity invokes an authenticated method and materializes its return value.
func SingleEntity[T any](ctx context.Context, d *Dispatcher, s *entity.Schema[T], method string, args ...Arg) (*T, error) {
	node, err := d.SingleCall(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return entity.Materialize(s, node)
}

// OptionalEntity is SingleEntity returning (nil, nil) on an empty or nil
// result.
func OptionalEntity[T any](ctx context.Context, d *Dispatcher, s *entity.Schema[T], method string, args ...Arg) (*T, error) {
	node, err := d.OptionalCall(ctx, method, args...)
	if err != nil || node == nil || entity.IsNil(node) {
		return nil, err
	}
	return entity.Materialize(s, node)
}

// ArrayCall invokes an authenticated method and materializes every child of
// its return value in server order. No children yields an empty slice.
func ArrayCall[T any](ctx context.Context, d *Dispatcher, s *entity.Schema[T], method string, args ...Arg) ([]*T, error) {
	ns, err := d.authenticated(ctx, method, args)
	if err != nil {
		return nil, err
	}
	if ns.Empty() {
		return []*T{}, nil
	}
	return entity.MaterializeAll(s, ns.First())
}
