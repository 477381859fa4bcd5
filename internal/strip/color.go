// Package strip implements the segment state and dispatch core: per-segment
// color tracking, debounced hardware writes with change suppression, and the
// serial connection lifecycle.
package strip

// Color is an RGB triple in the firmware's 8-bit range. Values are not
// validated by the type itself; entry points clamp before storing one.
type Color struct {
	R int `json:"r" example:"255" doc:"Red channel"`
	G int `json:"g" example:"1" doc:"Green channel"`
	B int `json:"b" example:"128" doc:"Blue channel"`
}

// DefaultColor is the color every segment starts with.
var DefaultColor = Color{R: 255, G: 1, B: 128}

// ClampLive clamps a channel to the live range 1..255. The on-intensity
// floor is 1; (0,0,0) is reserved for an explicit off.
func ClampLive(v int) int {
	if v < 1 {
		return 1
	}
	if v > 255 {
		return 255
	}
	return v
}

// ClampAll clamps a channel to 0..255 for whole-strip colors, where zero is
// meaningful.
func ClampAll(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
