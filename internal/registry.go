package internal

import "slices"

// Record holds the latest props of one mounted instance.
// Records are compared by identity, never by content.
type Record[P any] struct {
	props P
}

func (r *Record[P]) Props() P { return r.props }

// Registry is the ordered list of mounted records, in mount order.
type Registry[P any] struct {
	records []*Record[P]
}

func NewRegistry[P any]() *Registry[P] {
	return &Registry[P]{
		records: make([]*Record[P], 0),
	}
}

// Register appends a record for props and returns its handle.
func (r *Registry[P]) Register(props P) *Record[P] {
	rec := &Record[P]{props: props}
	r.records = append(r.records, rec)
	return rec
}

// Update replaces the props of rec in place, keeping its position.
// It returns false if rec is not registered.
func (r *Registry[P]) Update(rec *Record[P], props P) bool {
	if !r.Has(rec) {
		return false
	}

	rec.props = props
	return true
}

// Unregister removes rec. Unknown records leave the registry untouched and return false.
func (r *Registry[P]) Unregister(rec *Record[P]) bool {
	i := slices.Index(r.records, rec)
	if i < 0 {
		return false
	}

	r.records = slices.Delete(r.records, i, i+1)
	return true
}

func (r *Registry[P]) Has(rec *Record[P]) bool {
	return rec != nil && slices.Contains(r.records, rec)
}

// Inputs returns the props of every record in mount order.
// The returned slice is a copy and can be retained by the caller.
func (r *Registry[P]) Inputs() []P {
	inputs := make([]P, len(r.records))
	for i, rec := range r.records {
		inputs[i] = rec.props
	}

	return inputs
}

func (r *Registry[P]) Len() int {
	return len(r.records)
}
