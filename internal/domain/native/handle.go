// Package native defines the opaque identifiers exchanged with native collaborators.
//
// A Handle names an object owned by the render engine or by the host window
// system. Its value has no meaning to the caller; only the zero value, Empty,
// is interpreted: it means "no object".
package native

import "fmt"

// Handle is an opaque identifier for a native object
type Handle uintptr

// Empty is the sentinel returned by native factories that failed to produce an object
const Empty Handle = 0

// IsEmpty reports whether h is the empty sentinel
func (h Handle) IsEmpty() bool {
	return h == Empty
}

// String returns a stable hexadecimal representation used in log lines
func (h Handle) String() string {
	if h.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("0x%x", uintptr(h))
}

// Rect is a pixel rectangle in the coordinate space of a parent window
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Valid reports whether the rectangle has a positive area
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// String returns the rectangle as "WxH+X+Y"
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
