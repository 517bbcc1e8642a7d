// Package sideeffect collects props from every mounted instance of a wrapped
// component, reduces them into one state and hands that state to the client
// (an imperative apply) or to a server render pass (a Slot).
package sideeffect

import (
	"go.uber.org/zap"

	"github.com/AnatoleLucet/sideeffect/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Aggregator is the reduce/apply/map triple shared by every component it wraps.
type Aggregator[P, S any] struct {
	reduce func([]P) S
	apply  func(S)
	mapper func(S) any

	detect func() bool
	logger *zap.Logger
}

type options struct {
	detect func() bool
	logger *zap.Logger
}

// Option configures an Aggregator.
type Option func(*options)

// WithLogger sets the logger used for lifecycle debug entries.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDetector replaces the environment detection. It is still evaluated only once per Wrap.
func WithDetector(detect func() bool) Option {
	return func(o *options) {
		if detect != nil {
			o.detect = detect
		}
	}
}

// New creates an aggregator.
//
// reduce turns the props of all mounted instances, in mount order, into a state.
// apply receives that state in an interactive environment (a live document).
// mapper is optional: in a server render pass it transforms the state before it is
// written to the Slot. A nil mapper writes the reduced state unchanged.
func New[P, S any](reduce func([]P) S, apply func(S), mapper func(S) any, opts ...Option) (*Aggregator[P, S], error) {
	if reduce == nil {
		return nil, ErrNilReduce
	}
	if apply == nil {
		return nil, ErrNilApply
	}

	o := options{
		detect: internal.CanUseDOM,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Aggregator[P, S]{
		reduce: reduce,
		apply:  apply,
		mapper: mapper,
		detect: o.detect,
		logger: o.logger,
	}, nil
}

// Must panics if err is non-nil. Meant for package level declarations.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}
