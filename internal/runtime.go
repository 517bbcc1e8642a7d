package internal

type Runtime struct {
	tracker *Tracker

	// number of nested RunWithOwner calls, the runtime is released when it drops back to 0
	depth int
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker: NewTracker(),
	}
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) RunWithOwner(owner *Owner, fn func()) {
	r.depth++
	defer func() {
		r.depth--
		if r.depth == 0 {
			releaseRuntime(r)
		}
	}()

	r.tracker.RunWithOwner(owner, fn)
}

// RunWithOwner runs fn with owner as the current owner of the calling goroutine.
func RunWithOwner(owner *Owner, fn func()) {
	GetRuntime().RunWithOwner(owner, fn)
}

// CurrentOwner returns the owner the calling goroutine is running under, or nil.
func CurrentOwner() *Owner {
	r, ok := lookupRuntime()
	if !ok {
		return nil
	}

	return r.CurrentOwner()
}
