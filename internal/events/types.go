// Package events defines the typed in-process event bus the controller uses
// to notify collaborators (the HTTP/SSE layer, CLI) of state changes.
package events

// Event type constants for kelindar/event.
const (
	TypeSegmentColorChanged uint32 = iota + 1
	TypeConnectionStateChanged
	TypeCommandSent
	TypeStatus
	TypeLayoutChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SegmentColorChangedEvent reports the new current color of a segment. It is
// published on every live update, before the debounced hardware write, so a
// UI can render the swatch immediately.
type SegmentColorChangedEvent struct {
	SID       int    `json:"sid" example:"2" doc:"Segment identifier"`
	R         int    `json:"r" example:"255" doc:"Red channel"`
	G         int    `json:"g" example:"1" doc:"Green channel"`
	B         int    `json:"b" example:"128" doc:"Blue channel"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SegmentColorChangedEvent.
func (e SegmentColorChangedEvent) Type() uint32 { return TypeSegmentColorChanged }

// ConnectionStateChangedEvent reports a serial connection transition.
type ConnectionStateChangedEvent struct {
	State     string `json:"state" example:"connected" doc:"Connection state: connected or disconnected"`
	Port      string `json:"port,omitempty" example:"/dev/ttyUSB0" doc:"Serial port, when connected"`
	Baud      int    `json:"baud,omitempty" example:"9600" doc:"Baud rate, when connected"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConnectionStateChangedEvent.
func (e ConnectionStateChangedEvent) Type() uint32 { return TypeConnectionStateChanged }

// CommandSentEvent reports one protocol line written to the hardware.
type CommandSentEvent struct {
	Line      string `json:"line" example:"S,0,255,255,255" doc:"Wire line, without terminator"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CommandSentEvent.
func (e CommandSentEvent) Type() uint32 { return TypeCommandSent }

// StatusEvent carries the controller's human-readable status line.
type StatusEvent struct {
	Message   string `json:"message" example:"Connected to /dev/ttyUSB0 @ 9600 baud" doc:"Status message for display"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for StatusEvent.
func (e StatusEvent) Type() uint32 { return TypeStatus }

// LayoutChangedEvent reports an on-disk change of the strip layout file.
// Segments are fixed for the process lifetime; a UI receiving this should
// prompt for a restart.
type LayoutChangedEvent struct {
	Path      string `json:"path" example:"strip.toml" doc:"Layout file that changed"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LayoutChangedEvent.
func (e LayoutChangedEvent) Type() uint32 { return TypeLayoutChanged }
