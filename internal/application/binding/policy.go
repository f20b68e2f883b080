package binding

import "fmt"

// FailurePolicy decides what a frame failure releases besides the renderer
type FailurePolicy int

const (
	// TeardownAll destroys the renderer and the surface, leaving nothing partially bound
	TeardownAll FailurePolicy = iota
	// KeepSurface destroys only the renderer; the surface lives until the next rebind or close
	KeepSurface
)

// String returns the configuration spelling of the policy
func (p FailurePolicy) String() string {
	switch p {
	case TeardownAll:
		return "teardown"
	case KeepSurface:
		return "keep-surface"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy parses the configuration spelling. The empty string selects TeardownAll.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "teardown":
		return TeardownAll, nil
	case "keep-surface":
		return KeepSurface, nil
	default:
		return TeardownAll, fmt.Errorf("binding: unknown failure policy %q", s)
	}
}
