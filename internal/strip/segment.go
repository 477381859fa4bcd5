package strip

// Segment tracks color state for one addressable strip segment. Identity and
// LED count are fixed at construction; only the two colors mutate, always
// under the controller's lock.
type Segment struct {
	sid      int
	ledCount int

	// current is what the UI last asked for; it may lead lastSent while a
	// debounce timer is pending.
	current Color

	// lastSent is the color most recently written to the hardware, or the
	// default before any write.
	lastSent Color
}

func newSegment(sid, ledCount int) *Segment {
	return &Segment{
		sid:      sid,
		ledCount: ledCount,
		current:  DefaultColor,
		lastSent: DefaultColor,
	}
}

// SegmentState is a read-only snapshot handed to collaborators for display.
type SegmentState struct {
	SID      int   `json:"sid" example:"0" doc:"Segment identifier"`
	LEDCount int   `json:"led_count" example:"8" doc:"Number of LEDs in the segment"`
	Current  Color `json:"current" doc:"Color the UI last requested"`
	LastSent Color `json:"last_sent" doc:"Color most recently written to hardware"`
}

func (s *Segment) snapshot() SegmentState {
	return SegmentState{
		SID:      s.sid,
		LEDCount: s.ledCount,
		Current:  s.current,
		LastSent: s.lastSent,
	}
}
