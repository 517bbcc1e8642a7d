package sideeffect

import "github.com/AnatoleLucet/sideeffect/internal"

// Slot carries the state of a server render pass. Whoever starts the pass owns
// it, provides it with Provide and reads State once rendering is done.
type Slot struct {
	State any
}

// StateOf returns the slot state as a T.
func StateOf[T any](slot *Slot) (T, bool) {
	if slot == nil {
		var zero T
		return zero, false
	}

	v, ok := slot.State.(T)
	return v, ok
}

type slotKey struct{}

// Scope is a node of the mount tree. Instances mounted in a scope are unmounted
// when it is disposed, and values provided on a scope are visible to all its descendants.
type Scope struct {
	owner *internal.Owner
}

// NewScope creates a root scope.
func NewScope() *Scope {
	return &Scope{internal.NewOwner()}
}

// CurrentScope returns the scope the calling goroutine is running in (see Run),
// or a new root scope when there is none.
func CurrentScope() *Scope {
	if o := internal.CurrentOwner(); o != nil {
		return &Scope{o}
	}

	return NewScope()
}

// Run calls fn with s as the current scope of the calling goroutine.
func (s *Scope) Run(fn func(*Scope) error) error {
	return s.owner.Run(func() error { return fn(s) })
}

// Provide establishes slot over a new child scope and runs subtree in it.
// The child is not disposed when subtree returns: read the slot first, then
// dispose the scope of the render pass.
func (s *Scope) Provide(slot *Slot, subtree func(*Scope) error) error {
	if slot == nil {
		return ErrNilSlot
	}

	child := &Scope{s.owner.NewChild()}
	child.owner.SetValue(slotKey{}, slot)

	return child.Run(subtree)
}

// Provide establishes slot under the current scope. See Scope.Provide.
func Provide(slot *Slot, subtree func(*Scope) error) error {
	return CurrentScope().Provide(slot, subtree)
}

// Slot returns the nearest provided slot, or nil.
func (s *Scope) Slot() *Slot {
	v, _ := s.owner.Value(slotKey{})
	return as[*Slot](v)
}

// Dispose disposes every child scope, then runs the cleanups of s.
// Mounted instances are unmounted, each emitting once.
func (s *Scope) Dispose() { s.owner.Dispose() }

// Disposed reports whether Dispose was called.
func (s *Scope) Disposed() bool { return s.owner.Disposed() }

// Add a function to be called ONCE when the scope is disposed.
func (s *Scope) OnCleanup(fn func()) { s.owner.OnCleanup(fn) }

// Add a function to be called when a panic occurs while running within this scope.
// If no error listener is registered, the panic propagates as usual.
func (s *Scope) OnError(fn func(any)) { s.owner.OnError(fn) }
