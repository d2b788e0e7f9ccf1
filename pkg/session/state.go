package session

import (
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// MenuState is the state of the navigation menu.
type MenuState int

// Menu states.
const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Menu is the navigation menu state machine: Closed <-> Open.
type Menu struct {
	*Value[MenuState]
	w *Writer[MenuState]
}

// NewMenu creates a closed menu.
func NewMenu() *Menu {
	v, w := NewValue(MenuClosed)
	return &Menu{Value: v, w: w}
}

// Open opens the menu.
func (m *Menu) Open() { m.w.Set(MenuOpen) }

// Close closes the menu.
func (m *Menu) Close() { m.w.Set(MenuClosed) }

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() MenuState {
	return m.w.Update(func(s MenuState) MenuState {
		if s == MenuOpen {
			return MenuClosed
		}
		return MenuOpen
	})
}

// ViewerState is the state of the 360° image viewer. The zero value is closed.
type ViewerState struct {
	Image properties.ImageRef
}

// Showing reports whether an image is displayed.
func (s ViewerState) Showing() bool {
	return s.Image != ""
}

// Viewer is the image viewer state machine: Closed <-> Showing(image).
type Viewer struct {
	*Value[ViewerState]
	w *Writer[ViewerState]
}

// NewViewer creates a closed viewer.
func NewViewer() *Viewer {
	v, w := NewValue(ViewerState{})
	return &Viewer{Value: v, w: w}
}

// Show displays image, replacing whatever was shown. An empty ref closes the
// viewer.
func (v *Viewer) Show(image properties.ImageRef) {
	v.w.Set(ViewerState{Image: image})
}

// Close hides the viewer.
func (v *Viewer) Close() {
	v.w.Set(ViewerState{})
}
