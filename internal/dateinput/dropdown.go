package dateinput

import "github.com/misteinb/fluent-controls-go/internal/config"

// Node is one element of a rendered widget tree. Implementations expose
// just enough structure for containment checks, keeping the tracker free of
// any rendering dependency.
type Node interface {
	Parent() Node
}

// DropdownState is the visibility of the calendar overlay.
type DropdownState int

const (
	DropdownHidden DropdownState = iota
	DropdownVisible
)

// DropdownTracker decides overlay visibility from focus and window-level
// pointer events. Focus on the input shows the overlay; any window event
// whose target is outside both the input and the tracked container hides
// it. Containment walks at most config.MaxAncestorWalk ancestor levels
// before treating the target as outside.
type DropdownTracker struct {
	state     DropdownState
	input     Node
	container Node
}

// NewDropdownTracker builds a tracker for the given input node and overlay
// container. The overlay starts hidden.
func NewDropdownTracker(input, container Node) *DropdownTracker {
	return &DropdownTracker{input: input, container: container}
}

// State returns the current visibility.
func (t *DropdownTracker) State() DropdownState { return t.state }

// Visible reports whether the overlay is shown.
func (t *DropdownTracker) Visible() bool { return t.state == DropdownVisible }

// HandleFocus processes a focus-in event. Only focus targeting the input
// transitions Hidden to Visible; focus elsewhere is handled by
// HandleWindowEvent like any other window-level event.
func (t *DropdownTracker) HandleFocus(target Node) {
	if target == t.input {
		t.state = DropdownVisible
		return
	}
	t.HandleWindowEvent(target)
}

// HandleWindowEvent processes a window-level click or focus event. Events
// targeting the input itself never transition.
func (t *DropdownTracker) HandleWindowEvent(target Node) {
	if t.state != DropdownVisible {
		return
	}
	if target == t.input || t.contains(target) {
		return
	}
	t.state = DropdownHidden
}

// contains walks target's ancestor chain, giving up after the bounded
// number of levels.
func (t *DropdownTracker) contains(target Node) bool {
	n := target
	for depth := 0; n != nil && depth <= config.MaxAncestorWalk; depth++ {
		if n == t.container {
			return true
		}
		n = n.Parent()
	}
	return false
}
