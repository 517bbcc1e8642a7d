//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

func lookupRuntime() (*Runtime, bool) {
	r, ok := runtimes.Load(getGID())
	if !ok {
		return nil, false
	}

	return r.(*Runtime), true
}

func releaseRuntime(r *Runtime) {
	runtimes.CompareAndDelete(getGID(), r)
}

func getGID() int64 {
	return goid.Get()
}
