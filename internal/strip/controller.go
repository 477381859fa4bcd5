package strip

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MikeBeradino/neoctl/internal/events"
	"github.com/MikeBeradino/neoctl/internal/metrics"
	"github.com/MikeBeradino/neoctl/internal/protocol"
	"github.com/MikeBeradino/neoctl/internal/serial"
)

// Sentinel errors surfaced to collaborators.
var (
	// ErrInvalidBaud reports a baud value that does not parse as a positive
	// integer. It is returned before any transport call.
	ErrInvalidBaud = errors.New("baud must be a positive integer")

	// ErrNotConnected reports a command dropped because the serial link is
	// not open. The command is not queued or retried.
	ErrNotConnected = errors.New("not connected")

	// ErrUnknownSegment reports a segment id outside the configured layout.
	ErrUnknownSegment = errors.New("unknown segment")
)

// DefaultDebounceDelay is the quiet period applied to live color updates
// before they are written to hardware.
const DefaultDebounceDelay = 120 * time.Millisecond

// Options configures a Controller.
type Options struct {
	Transport serial.Transport

	// LEDCounts holds one entry per segment in sid order; its length fixes
	// the segment count for the process lifetime.
	LEDCounts []int

	// DebounceDelay overrides DefaultDebounceDelay when non-zero.
	DebounceDelay time.Duration

	Bus     *events.Bus      // optional; state-change notifications
	Metrics *metrics.Metrics // optional; prometheus instrumentation
	Logger  *slog.Logger
}

// Controller owns the strip's mutable state: the serial connection and every
// segment record. All entry points serialize on a single mutex; the debounce
// timers are the only source of deferred execution, and their commits take
// the same mutex.
type Controller struct {
	mu        sync.Mutex
	transport serial.Transport
	segments  []*Segment
	debouncer *Debouncer
	bus       *events.Bus
	metrics   *metrics.Metrics
	logger    *slog.Logger

	connected bool
	port      string
	baud      int
	status    string
}

// New creates a Controller with one segment per LEDCounts entry.
func New(opts *Options) *Controller {
	delay := opts.DebounceDelay
	if delay == 0 {
		delay = DefaultDebounceDelay
	}

	c := &Controller{
		transport: opts.Transport,
		bus:       opts.Bus,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		status:    "Disconnected",
	}
	for sid, ledCount := range opts.LEDCounts {
		c.segments = append(c.segments, newSegment(sid, ledCount))
	}

	c.debouncer = NewDebouncer(delay, func(sid int) {
		if err := c.CommitSegment(sid); err != nil && !errors.Is(err, ErrNotConnected) {
			c.logger.Warn("Debounced commit failed", "sid", sid, "error", err)
		}
	})

	return c
}

// SetSegmentLive records a live color intent for a segment: channels are
// clamped to 1..255, current state is updated optimistically, and the
// segment's debounce timer is re-armed. Nothing is written to hardware until
// the quiet period elapses. Out-of-range channels never fail; only an
// unknown sid does.
func (c *Controller) SetSegmentLive(sid, r, g, b int) error {
	c.mu.Lock()
	seg, err := c.segmentLocked(sid)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	seg.current = Color{R: ClampLive(r), G: ClampLive(g), B: ClampLive(b)}
	cur := seg.current
	c.mu.Unlock()

	c.debouncer.Arm(sid)
	c.publish(events.SegmentColorChangedEvent{
		SID: sid, R: cur.R, G: cur.G, B: cur.B, Timestamp: timestamp(),
	})
	return nil
}

// CommitSegment writes the segment's current color to hardware. The write is
// suppressed when the color already equals the last value sent — the user
// dragged a slider back to where it started. lastSent only advances on a
// successful write, so a dropped command is retried by the next commit.
func (c *Controller) CommitSegment(sid int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seg, err := c.segmentLocked(sid)
	if err != nil {
		return err
	}
	return c.commitLocked(seg)
}

// SegmentOn sets a segment to full white immediately, bypassing the debounce
// path: explicit ON expects instant feedback.
func (c *Controller) SegmentOn(sid int) error {
	return c.setSegmentImmediate(sid, Color{R: 255, G: 255, B: 255})
}

// SegmentOff turns a segment off immediately, bypassing the debounce path.
func (c *Controller) SegmentOff(sid int) error {
	return c.setSegmentImmediate(sid, Color{})
}

// AllOn sets every LED to full white immediately. Per-segment bookkeeping is
// deliberately left untouched; see the package notes on global commands.
func (c *Controller) AllOn() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.writeLocked(protocol.AllOn{}.Encode(), "all_on") {
		return ErrNotConnected
	}
	return nil
}

// AllOff turns every LED off immediately. Per-segment bookkeeping is left
// untouched.
func (c *Controller) AllOff() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.writeLocked(protocol.AllOff{}.Encode(), "all_off") {
		return ErrNotConnected
	}
	return nil
}

// AllColor sets every LED to one color immediately. Channels clamp to 0..255
// — wider than the live floor, since all-off via color is meaningful here.
// Per-segment bookkeeping is left untouched.
func (c *Controller) AllColor(r, g, b int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd := protocol.SetAll{R: ClampAll(r), G: ClampAll(g), B: ClampAll(b)}
	if !c.writeLocked(cmd.Encode(), "all_color") {
		return ErrNotConnected
	}
	return nil
}

// Connect opens the serial link. The baud is accepted as text because that is
// how collaborators collect it; it must parse as a positive integer or
// Connect fails with ErrInvalidBaud before the transport is touched. An open
// failure leaves the connection state Disconnected. Calling Connect while
// already connected closes the old link first.
func (c *Controller) Connect(port, baud string) error {
	b, err := strconv.Atoi(strings.TrimSpace(baud))
	if err != nil || b <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidBaud, baud)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transport.Open(port, b); err != nil {
		c.connected = false
		c.setStatusLocked("Connection failed")
		return fmt.Errorf("connect %s: %w", port, err)
	}

	c.connected = true
	c.port = port
	c.baud = b
	if c.metrics != nil {
		c.metrics.ConnectionState.Set(1)
	}
	c.setStatusLocked(fmt.Sprintf("Connected to %s @ %d baud", port, b))
	c.publish(events.ConnectionStateChangedEvent{
		State: "connected", Port: port, Baud: b, Timestamp: timestamp(),
	})
	c.logger.Info("Connected", "port", port, "baud", b)
	return nil
}

// Disconnect closes the serial link. It is a no-op when already disconnected.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transport.Close()
	c.connected = false
	c.port = ""
	c.baud = 0
	if c.metrics != nil {
		c.metrics.ConnectionState.Set(0)
	}
	c.setStatusLocked("Disconnected")
	c.publish(events.ConnectionStateChangedEvent{
		State: "disconnected", Timestamp: timestamp(),
	})
	c.logger.Info("Disconnected")
}

// Stop cancels all pending debounce timers and releases the serial link.
// Called on process shutdown so the port is freed even when the user never
// disconnected.
func (c *Controller) Stop() {
	c.debouncer.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport.Close()
	c.connected = false
	if c.metrics != nil {
		c.metrics.ConnectionState.Set(0)
	}
}

// ConnectionState is a snapshot of the serial connection for display.
type ConnectionState struct {
	Connected bool   `json:"connected" example:"true" doc:"Whether the serial link is open"`
	Port      string `json:"port,omitempty" example:"/dev/ttyUSB0" doc:"Serial port, when connected"`
	Baud      int    `json:"baud,omitempty" example:"9600" doc:"Baud rate, when connected"`
	Status    string `json:"status" example:"Connected to /dev/ttyUSB0 @ 9600 baud" doc:"Last status line"`
}

// Connection returns a snapshot of the connection state.
func (c *Controller) Connection() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConnectionState{
		Connected: c.connected,
		Port:      c.port,
		Baud:      c.baud,
		Status:    c.status,
	}
}

// Status returns the last human-readable status line.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Segments returns a snapshot of every segment's state in sid order.
func (c *Controller) Segments() []SegmentState {
	c.mu.Lock()
	defer c.mu.Unlock()

	states := make([]SegmentState, 0, len(c.segments))
	for _, seg := range c.segments {
		states = append(states, seg.snapshot())
	}
	return states
}

func (c *Controller) segmentLocked(sid int) (*Segment, error) {
	if sid < 0 || sid >= len(c.segments) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSegment, sid)
	}
	return c.segments[sid], nil
}

func (c *Controller) commitLocked(seg *Segment) error {
	if seg.current == seg.lastSent {
		if c.metrics != nil {
			c.metrics.SuppressedCommits.Inc()
		}
		c.logger.Debug("Commit suppressed", "sid", seg.sid)
		return nil
	}

	cmd := protocol.SetSegment{SID: seg.sid, R: seg.current.R, G: seg.current.G, B: seg.current.B}
	if !c.writeLocked(cmd.Encode(), "segment") {
		return ErrNotConnected
	}
	seg.lastSent = seg.current
	return nil
}

// setSegmentImmediate writes a fixed color for a segment right away. current
// and lastSent both advance on success only; a pending debounce timer is
// canceled once the write lands, since it would be suppressed anyway.
func (c *Controller) setSegmentImmediate(sid int, col Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seg, err := c.segmentLocked(sid)
	if err != nil {
		return err
	}

	cmd := protocol.SetSegment{SID: sid, R: col.R, G: col.G, B: col.B}
	if !c.writeLocked(cmd.Encode(), "segment") {
		return ErrNotConnected
	}
	seg.current = col
	seg.lastSent = col
	c.debouncer.Cancel(sid)
	c.publish(events.SegmentColorChangedEvent{
		SID: sid, R: col.R, G: col.G, B: col.B, Timestamp: timestamp(),
	})
	return nil
}

// writeLocked writes one protocol line, updating status and instrumentation.
// Callers must hold c.mu.
func (c *Controller) writeLocked(line, command string) bool {
	if !c.transport.WriteLine(line) {
		c.setStatusLocked("Not connected")
		if c.metrics != nil {
			c.metrics.WriteFailures.Inc()
		}
		return false
	}

	if c.metrics != nil {
		c.metrics.Commands.WithLabelValues(command).Inc()
	}
	c.setStatusLocked("Sent: " + line)
	c.publish(events.CommandSentEvent{Line: line, Timestamp: timestamp()})
	return true
}

func (c *Controller) setStatusLocked(s string) {
	c.status = s
	c.publish(events.StatusEvent{Message: s, Timestamp: timestamp()})
}

func (c *Controller) publish(ev events.Event) {
	if c.bus != nil {
		c.bus.Publish(ev)
	}
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
