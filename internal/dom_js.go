//go:build js && wasm

package internal

import "syscall/js"

// CanUseDOM reports whether a live document is reachable: window.document exists
// and can create elements.
func CanUseDOM() bool {
	window := js.Global().Get("window")
	if window.IsUndefined() || window.IsNull() {
		return false
	}

	document := window.Get("document")
	if !document.Truthy() {
		return false
	}

	return document.Get("createElement").Type() == js.TypeFunction
}
