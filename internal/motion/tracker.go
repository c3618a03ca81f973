// Package motion turns scroll offsets into the animated header state.
package motion

// Tracker derives the active flag from vertical scroll offset.
// The flag flips only when the offset crosses zero, so scrolling within the
// list never restarts the animation.
type Tracker struct {
	active bool
}

// Active reports whether the list is scrolled past its top
func (t *Tracker) Active() bool {
	return t.active
}

// OnScroll samples one offset and reports whether the flag changed.
func (t *Tracker) OnScroll(offsetY float64) bool {
	switch {
	case offsetY <= 0 && t.active:
		t.active = false
		return true
	case offsetY > 0 && !t.active:
		t.active = true
		return true
	}
	return false
}
