// Package button exposes a debounced press/release edge stream for the
// display reset control.
package button

// Event is one debounced edge. Pressed=true on press, false on release.
type Event struct {
	Pin     int
	Pressed bool
}
