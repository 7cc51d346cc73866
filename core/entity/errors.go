package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFragment is returned when materializing from a nil node.
	ErrNilFragment = errors.New("entity: nil fragment")

	// ErrShape indicates a node whose structure does not fit the declared field.
	ErrShape = errors.New("entity: unexpected node shape")
)

// ConversionError reports wire content that a field's converter rejected.
type ConversionError struct {
	Entity string
	Wire   string
	Raw    string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("entity %s: convert %q (raw %q): %v", e.Entity, e.Wire, e.Raw, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// MaterializationError reports a converted value that could not be assigned
// to its attribute.
type MaterializationError struct {
	Entity string
	Wire   string
	Err    error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("entity %s: assign %q: %v", e.Entity, e.Wire, e.Err)
}

func (e *MaterializationError) Unwrap() error {
	return e.Err
}

// qualify prefixes the wire name of a nested failure with its parent field so
// the error points at the full path (e.g. "timeInfo.serverTime"). The entity
// name is cleared and filled in again by the enclosing schema.
func qualify(wire string, err error) error {
	var ce *ConversionError
	if errors.As(err, &ce) {
		ce.Entity = ""
		ce.Wire = wire + "." + ce.Wire
		return ce
	}
	var me *MaterializationError
	if errors.As(err, &me) {
		me.Entity = ""
		me.Wire = wire + "." + me.Wire
		return me
	}
	return &MaterializationError{Wire: wire, Err: err}
}

// attribute fills in the entity name on errors raised by field decoders.
func attribute(entity string, err error) error {
	var ce *ConversionError
	if errors.As(err, &ce) && ce.Entity == "" {
		ce.Entity = entity
	}
	var me *MaterializationError
	if errors.As(err, &me) && me.Entity == "" {
		me.Entity = entity
	}
	return err
}
