package sideeffect

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AnatoleLucet/sideeffect/internal"
)

// Component renders props into some output R (markup, a node tree, a string...).
type Component[P, R any] func(props P) R

// dispatcher is where an emitted state goes. Picked once per Wrapped.
type dispatcher[S any] interface {
	dispatch(state S, slot *Slot)
	interactive() bool
}

type clientDispatcher[S any] struct {
	apply func(S)
}

func (d clientDispatcher[S]) dispatch(state S, _ *Slot) { d.apply(state) }
func (d clientDispatcher[S]) interactive() bool         { return true }

type serverDispatcher[S any] struct {
	mapper func(S) any
}

func (d serverDispatcher[S]) dispatch(state S, slot *Slot) {
	if d.mapper != nil {
		slot.State = d.mapper(state)
		return
	}

	slot.State = state
}

func (d serverDispatcher[S]) interactive() bool { return false }

// Wrapped is a component bound to an aggregator. Every instance mounted from it
// shares a single registry.
//
// The environment is detected once, when the Wrapped is created. A process that
// needs both environments for the same component has to wrap it twice.
type Wrapped[P, S, R any] struct {
	mu sync.Mutex

	name      string
	agg       *Aggregator[P, S]
	component Component[P, R]
	registry  *internal.Registry[P]
	dispatch  dispatcher[S]
	logger    *zap.Logger
}

// Wrap binds component to the aggregator.
func Wrap[P, S, R any](a *Aggregator[P, S], component Component[P, R]) (*Wrapped[P, S, R], error) {
	if a == nil {
		return nil, ErrNilAggregator
	}
	if component == nil {
		return nil, ErrNilComponent
	}

	var d dispatcher[S]
	if a.detect() {
		d = clientDispatcher[S]{apply: a.apply}
	} else {
		d = serverDispatcher[S]{mapper: a.mapper}
	}

	name := fmt.Sprintf("SideEffect(%s)", displayName(component))

	w := &Wrapped[P, S, R]{
		name:      name,
		agg:       a,
		component: component,
		registry:  internal.NewRegistry[P](),
		dispatch:  d,
		logger:    a.logger.With(zap.String("component", name)),
	}
	w.logger.Debug("wrapped component", zap.Bool("interactive", d.interactive()))

	return w, nil
}

// displayName is the func name of component without package path or type
// arguments. Closures are named "Component".
func displayName(component any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(component).Pointer())
	if fn == nil {
		return "Component"
	}

	name := fn.Name()
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || isClosureName(name) {
		return "Component"
	}

	return name
}

// closures are named funcN, or just N when nested in another closure
func isClosureName(name string) bool {
	digits := strings.TrimPrefix(name, "func")
	if digits == "" {
		return false
	}

	return strings.Trim(digits, "0123456789") == ""
}

// Name returns "SideEffect(<component>)".
func (w *Wrapped[P, S, R]) Name() string { return w.name }

// Interactive reports which environment was detected when w was created.
func (w *Wrapped[P, S, R]) Interactive() bool { return w.dispatch.interactive() }

// Len returns the number of mounted instances.
func (w *Wrapped[P, S, R]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.registry.Len()
}

// emit must be called with w.mu held.
func (w *Wrapped[P, S, R]) emit(slot *Slot) {
	state := w.agg.reduce(w.registry.Inputs())
	w.dispatch.dispatch(state, slot)
}

// Mount mounts a new instance under scope: its props are registered and the
// state is emitted, then the component is rendered with scope's child as the
// current scope.
//
// Outside an interactive environment the scope must have a Slot (see Provide),
// otherwise ErrNoSlot is returned and nothing is registered.
func (w *Wrapped[P, S, R]) Mount(scope *Scope, props P) (*Instance[P, S, R], error) {
	if scope == nil {
		return nil, fmt.Errorf("%s: %w", w.name, ErrNilScope)
	}

	var slot *Slot
	if !w.dispatch.interactive() {
		slot = scope.Slot()
		if slot == nil {
			return nil, fmt.Errorf("%s: %w", w.name, ErrNoSlot)
		}
	}

	inst := &Instance[P, S, R]{
		w:    w,
		slot: slot,
	}

	w.register(inst, props)

	inst.scope = &Scope{owner: scope.owner.NewChild()}
	inst.scope.owner.OnCleanup(inst.release)

	return inst, inst.render(props)
}

// register appends the instance and emits. If the emission panics the record
// is removed again before the panic continues.
func (w *Wrapped[P, S, R]) register(inst *Instance[P, S, R], props P) {
	w.mu.Lock()
	defer w.mu.Unlock()

	inst.record = w.registry.Register(props)
	inst.mounted = true

	emitted := false
	defer func() {
		if !emitted {
			w.registry.Unregister(inst.record)
			inst.mounted = false
		}
	}()

	w.emit(inst.slot)
	emitted = true

	w.logger.Debug("mounted", zap.Int("instances", w.registry.Len()))
}

// Instance is one mounted occurrence of a Wrapped component.
type Instance[P, S, R any] struct {
	w *Wrapped[P, S, R]

	record  *internal.Record[P]
	slot    *Slot
	scope   *Scope
	mounted bool

	output R
}

func (i *Instance[P, S, R]) render(props P) error {
	return i.scope.owner.Run(func() error {
		i.output = i.w.component(props)
		return nil
	})
}

// Update re-renders the instance with props, replaces its registered props in
// place and emits. It always emits, even if props did not change.
// Instances mounted while rendering the previous props are unmounted first.
func (i *Instance[P, S, R]) Update(props P) error {
	if !i.Mounted() {
		return fmt.Errorf("%s: %w", i.w.name, ErrNotMounted)
	}

	i.scope.owner.DisposeChildren()
	if err := i.render(props); err != nil {
		return err
	}

	w := i.w
	w.mu.Lock()
	defer w.mu.Unlock()

	// unmounted while rendering
	if !w.registry.Update(i.record, props) {
		return fmt.Errorf("%s: %w", w.name, ErrNotMounted)
	}
	w.emit(i.slot)
	w.logger.Debug("updated", zap.Int("instances", w.registry.Len()))

	return nil
}

// Unmount disposes the instance scope, unmounting anything mounted below it,
// then removes the instance and emits once more.
func (i *Instance[P, S, R]) Unmount() error {
	if !i.Mounted() {
		return fmt.Errorf("%s: %w", i.w.name, ErrNotMounted)
	}

	i.scope.owner.Dispose()
	return nil
}

// release is the instance scope's cleanup.
func (i *Instance[P, S, R]) release() {
	w := i.w
	w.mu.Lock()
	defer w.mu.Unlock()

	if !i.mounted {
		return
	}
	i.mounted = false

	if !w.registry.Unregister(i.record) {
		return
	}
	w.emit(i.slot)
	w.logger.Debug("unmounted", zap.Int("instances", w.registry.Len()))
}

// Mounted reports whether the instance is still registered.
func (i *Instance[P, S, R]) Mounted() bool {
	i.w.mu.Lock()
	defer i.w.mu.Unlock()

	return i.mounted
}

// Props returns the props last registered for the instance.
func (i *Instance[P, S, R]) Props() P {
	i.w.mu.Lock()
	defer i.w.mu.Unlock()

	return i.record.Props()
}

// Output returns what the component rendered last.
func (i *Instance[P, S, R]) Output() R { return i.output }

// Scope is the scope the component renders in. Instances mounted in it are
// unmounted with this one.
func (i *Instance[P, S, R]) Scope() *Scope { return i.scope }
