// Package surface defines the native child surface a renderer draws into.
//
// A surface is a drawable region parented to the host window. It is created
// with a fixed size; the host never resizes a surface in place, it destroys it
// and creates a new one.
package surface

import (
	"errors"

	"github.com/younwookim/mythforge/internal/domain/native"
)

var (
	// ErrInvalidDimensions is returned when a surface is requested with a non-positive size
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrSurfaceCreation is returned when the window system could not create the surface
	ErrSurfaceCreation = errors.New("surface: creation failed")
)

// Surface is a live native child surface
type Surface interface {
	// ID returns the native identifier a renderer binds to.
	// It returns native.Empty once the surface has been destroyed.
	ID() native.Handle

	// Bounds returns the surface rectangle relative to its parent
	Bounds() native.Rect

	// Destroy releases the native surface. It is idempotent.
	Destroy()
}

// Factory creates child surfaces parented to a host window
type Factory interface {
	CreateSurface(parent native.Handle, bounds native.Rect) (Surface, error)
}
