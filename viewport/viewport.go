// Package viewport classifies a client viewport width into the catalog's
// responsive breakpoints. The list endpoint uses the class to pick a default
// page size: small screens scroll infinitely and fetch smaller pages.
package viewport

// Breakpoints in CSS pixels. A width of 768 is still small, 1024 still
// medium.
const (
	SmallMax  = 768
	MediumMax = 1024
)

type Viewport struct {
	IsSmall  bool `json:"isSmall"`
	IsMedium bool `json:"isMedium"`
	IsLarge  bool `json:"isLarge"`
}

// Classify maps a width to exactly one breakpoint class. Non-positive widths
// mean the client did not report one; they classify as large, matching the
// desktop-first default of the UI.
func Classify(width int) Viewport {
	switch {
	case width > 0 && width <= SmallMax:
		return Viewport{IsSmall: true}
	case width > SmallMax && width <= MediumMax:
		return Viewport{IsMedium: true}
	default:
		return Viewport{IsLarge: true}
	}
}
