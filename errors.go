package sideeffect

import "errors"

var (
	ErrNilReduce     = errors.New("sideeffect: expected reduce to be a function")
	ErrNilApply      = errors.New("sideeffect: expected apply to be a function")
	ErrNilAggregator = errors.New("sideeffect: expected an aggregator")
	ErrNilComponent  = errors.New("sideeffect: expected component to be a function")

	// ErrNilSlot is returned when a nil slot is provided to a subtree.
	ErrNilSlot = errors.New("sideeffect: slot must be a non-nil *Slot")

	// ErrNoSlot is returned when a server-side mount finds no slot in its scope.
	ErrNoSlot = errors.New("sideeffect: no slot provided for server render")

	ErrNilScope   = errors.New("sideeffect: expected a scope")
	ErrNotMounted = errors.New("sideeffect: instance is not mounted")
)
