// Package nav models the responsive navigation behaviour: a two-state toggle
// machine plus the stylesheet and client script that realize it in the
// rendered pages.
package nav

// State is the logical visibility of the collapsible navigation menu.
type State int

const (
	// StateCollapsed hides the menu behind the toggle control.
	StateCollapsed State = iota
	// StateExpanded shows the menu.
	StateExpanded
)

func (s State) String() string {
	if s == StateExpanded {
		return "expanded"
	}
	return "collapsed"
}

// Toggle flips between the two states. The toggle control is the only
// transition trigger; there is no timeout or auto-collapse.
func (s State) Toggle() State {
	if s == StateCollapsed {
		return StateExpanded
	}
	return StateCollapsed
}

// InitialState returns the state a freshly loaded page starts in. Below the
// collapse threshold the menu starts collapsed; at or above it the menu is
// always visible and the toggle is hidden, which maps onto the expanded state.
// Prior state is never persisted across page loads.
func InitialState(viewportWidth, collapseWidth int) State {
	if viewportWidth < collapseWidth {
		return StateCollapsed
	}
	return StateExpanded
}
