//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

func lookupRuntime() (*Runtime, bool) {
	return GetRuntime(), true
}

// the global runtime lives for the whole program
func releaseRuntime(*Runtime) {}
