//go:build !(js && wasm)

package internal

// CanUseDOM reports whether a live document is reachable. Only js/wasm builds have one.
func CanUseDOM() bool {
	return false
}
