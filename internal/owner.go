package internal

import (
	"iter"
)

type Owner struct {
	// cleanup functions to be called when the owner is disposed
	cleanups []func()

	// panic error handlers
	catchers []func(any)

	// values established on this owner, inherited by descendants
	values map[any]any

	disposed bool

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

func NewOwner() *Owner {
	return &Owner{
		cleanups: make([]func(), 0),
		values:   make(map[any]any),
	}
}

// NewChild creates an owner attached under o.
func (o *Owner) NewChild() *Owner {
	child := NewOwner()
	o.AddChild(child)
	return child
}

// Run calls fn with o as the current owner of the calling goroutine.
// Panics are handed to the catchers registered with OnError, or propagate if there are none.
func (o *Owner) Run(fn func() error) (err error) {
	defer o.recover()

	RunWithOwner(o, func() { err = fn() })
	return err
}

func (o *Owner) recover() {
	if len(o.catchers) == 0 {
		return
	}

	if r := recover(); r != nil {
		for _, catcher := range o.catchers {
			catcher(r)
		}
	}
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (parent *Owner) RemoveChild(child *Owner) {
	if child.parent != parent {
		return
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		parent.childrenHead = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func (o *Owner) Parent() *Owner { return o.parent }

func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := n.childrenHead

		for child != nil {
			// disposing a child detaches it, grab the sibling first
			next := child.nextSibling

			if !yield(child) {
				return
			}

			child = next
		}
	}
}

// Dispose disposes every child, runs the cleanups once and detaches o from its parent.
func (n *Owner) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true

	n.DisposeChildren()

	cleanups := n.cleanups
	n.cleanups = nil
	for i := 0; i < len(cleanups); i++ {
		cleanups[i]()
	}

	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
	n.childrenHead = nil
}

func (n *Owner) Disposed() bool { return n.disposed }

func (n *Owner) OnCleanup(fn func()) {
	n.cleanups = append(n.cleanups, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.catchers = append(n.catchers, fn)
}

// SetValue establishes a value for key on this owner.
func (n *Owner) SetValue(key, value any) {
	n.values[key] = value
}

// Value looks key up on this owner, then on its ancestors.
func (n *Owner) Value(key any) (any, bool) {
	for o := n; o != nil; o = o.parent {
		if v, ok := o.values[key]; ok {
			return v, true
		}
	}

	return nil, false
}
