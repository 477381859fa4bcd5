package strip

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MikeBeradino/neoctl/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeTransport records written lines in memory.
type fakeTransport struct {
	mu       sync.Mutex
	open     bool
	failOpen bool
	opens    int
	lines    []string
}

func (f *fakeTransport) Open(port string, baud int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.failOpen {
		return errors.New("port busy")
	}
	f.open = true
	return nil
}

func (f *fakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

func (f *fakeTransport) WriteLine(text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return false
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	f.lines = append(f.lines, text)
	return true
}

func (f *fakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeTransport) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

const testDelay = 25 * time.Millisecond

func newTestController(tr *fakeTransport) *Controller {
	return New(&Options{
		Transport:     tr,
		LEDCounts:     []int{8, 9, 9, 9, 9},
		DebounceDelay: testDelay,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
}

func connect(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Connect("COMX", "9600"); err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}
}

func waitQuiet() {
	time.Sleep(4 * testDelay)
}

func TestSetSegmentLive_ClampsToLiveRange(t *testing.T) {
	tests := []struct {
		name string
		in   [3]int
		want Color
	}{
		{"in range", [3]int{10, 20, 30}, Color{10, 20, 30}},
		{"zero floor", [3]int{0, 0, 0}, Color{1, 1, 1}},
		{"negative", [3]int{-1, -100, 5}, Color{1, 1, 5}},
		{"above range", [3]int{256, 1000, 255}, Color{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{}
			c := newTestController(tr)
			defer c.Stop()

			if err := c.SetSegmentLive(1, tt.in[0], tt.in[1], tt.in[2]); err != nil {
				t.Fatalf("SetSegmentLive() returned error: %v", err)
			}
			if got := c.Segments()[1].Current; got != tt.want {
				t.Errorf("Current = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSetSegmentLive_UnknownSegment(t *testing.T) {
	c := newTestController(&fakeTransport{})
	defer c.Stop()

	if err := c.SetSegmentLive(7, 1, 2, 3); !errors.Is(err, ErrUnknownSegment) {
		t.Errorf("SetSegmentLive(7) error = %v, want ErrUnknownSegment", err)
	}
}

// Scenario A: one live update produces exactly one wire line after the quiet
// window.
func TestDebouncedCommit_SingleLine(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	if err := c.SetSegmentLive(0, 255, 255, 255); err != nil {
		t.Fatalf("SetSegmentLive() returned error: %v", err)
	}

	waitQuiet()

	got := tr.written()
	if len(got) != 1 || got[0] != "S,0,255,255,255\n" {
		t.Errorf("written = %q, want exactly [\"S,0,255,255,255\\n\"]", got)
	}
	if last := c.Segments()[0].LastSent; last != (Color{255, 255, 255}) {
		t.Errorf("LastSent = %+v, want 255,255,255", last)
	}
}

// Debounce coalescing: N rapid updates collapse into one commit carrying the
// last value.
func TestDebouncedCommit_CoalescesRapidUpdates(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	for v := 10; v <= 50; v += 10 {
		if err := c.SetSegmentLive(2, v, v, v); err != nil {
			t.Fatalf("SetSegmentLive() returned error: %v", err)
		}
	}

	waitQuiet()

	got := tr.written()
	if len(got) != 1 {
		t.Fatalf("written %d lines, want 1: %q", len(got), got)
	}
	if got[0] != "S,2,50,50,50\n" {
		t.Errorf("written %q, want final value S,2,50,50,50", got[0])
	}
}

// Suppression: dragging back to the starting value before the timer fires
// produces no write.
func TestCommit_SuppressedWhenUnchanged(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	if err := c.SetSegmentLive(3, 42, 42, 42); err != nil {
		t.Fatalf("SetSegmentLive() returned error: %v", err)
	}
	waitQuiet()

	// Drag away and back within one quiet window.
	_ = c.SetSegmentLive(3, 99, 99, 99)
	_ = c.SetSegmentLive(3, 42, 42, 42)
	waitQuiet()

	got := tr.written()
	if len(got) != 1 {
		t.Errorf("written %d lines, want 1 (second commit suppressed): %q", len(got), got)
	}
}

// Idempotence: a second CommitSegment with no intervening live update is
// suppressed.
func TestCommit_Idempotent(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	_ = c.SetSegmentLive(1, 7, 8, 9)
	waitQuiet()

	if err := c.CommitSegment(1); err != nil {
		t.Fatalf("CommitSegment() returned error: %v", err)
	}
	if err := c.CommitSegment(1); err != nil {
		t.Fatalf("CommitSegment() returned error: %v", err)
	}

	if got := tr.written(); len(got) != 1 {
		t.Errorf("written %d lines, want 1: %q", len(got), got)
	}
}

// Scenario B: not connected — no bytes written, lastSent unchanged, error
// reports not-connected.
func TestSegmentOn_NotConnected(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()

	before := c.Segments()[2].LastSent

	err := c.SegmentOn(2)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("SegmentOn() error = %v, want ErrNotConnected", err)
	}
	if got := tr.written(); len(got) != 0 {
		t.Errorf("written %q, want nothing", got)
	}
	if after := c.Segments()[2].LastSent; after != before {
		t.Errorf("LastSent changed to %+v on failed write", after)
	}
	if got := c.Status(); got != "Not connected" {
		t.Errorf("Status() = %q, want %q", got, "Not connected")
	}
}

func TestSegmentOnOff_Immediate(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	if err := c.SegmentOn(1); err != nil {
		t.Fatalf("SegmentOn() returned error: %v", err)
	}
	if err := c.SegmentOff(1); err != nil {
		t.Fatalf("SegmentOff() returned error: %v", err)
	}

	got := tr.written()
	want := []string{"S,1,255,255,255\n", "S,1,0,0,0\n"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("written %q, want %q", got, want)
	}

	seg := c.Segments()[1]
	if seg.Current != (Color{}) || seg.LastSent != (Color{}) {
		t.Errorf("after off, current/lastSent = %+v/%+v, want zero", seg.Current, seg.LastSent)
	}
}

// Scenario C: AllOff writes one literal "0" line and leaves per-segment
// lastSent untouched.
func TestAllOff_LeavesSegmentStateAlone(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	before := c.Segments()

	if err := c.AllOff(); err != nil {
		t.Fatalf("AllOff() returned error: %v", err)
	}

	got := tr.written()
	if len(got) != 1 || got[0] != "0\n" {
		t.Errorf("written %q, want exactly [\"0\\n\"]", got)
	}
	for i, seg := range c.Segments() {
		if seg.LastSent != before[i].LastSent {
			t.Errorf("segment %d lastSent changed by AllOff", i)
		}
	}
}

func TestAllOnAllColor(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	if err := c.AllOn(); err != nil {
		t.Fatalf("AllOn() returned error: %v", err)
	}
	// AllColor clamps with a zero floor, unlike the live path.
	if err := c.AllColor(-5, 300, 0); err != nil {
		t.Fatalf("AllColor() returned error: %v", err)
	}

	got := tr.written()
	want := []string{"1\n", "A,0,255,0\n"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("written %q, want %q", got, want)
	}
}

// Scenario D: a non-integer baud fails before the transport is touched.
func TestConnect_InvalidBaud(t *testing.T) {
	tests := []string{"abc", "", "-9600", "0", "96.00"}

	for _, baud := range tests {
		t.Run(baud, func(t *testing.T) {
			tr := &fakeTransport{}
			c := newTestController(tr)
			defer c.Stop()

			err := c.Connect("COMX", baud)
			if !errors.Is(err, ErrInvalidBaud) {
				t.Errorf("Connect(baud=%q) error = %v, want ErrInvalidBaud", baud, err)
			}
			if tr.opens != 0 {
				t.Errorf("transport Open called %d times, want 0", tr.opens)
			}
			if c.Connection().Connected {
				t.Error("Connection state is connected after invalid baud")
			}
		})
	}
}

func TestConnect_OpenFailure(t *testing.T) {
	tr := &fakeTransport{failOpen: true}
	c := newTestController(tr)
	defer c.Stop()

	if err := c.Connect("COMX", "9600"); err == nil {
		t.Fatal("Connect() succeeded with failing transport")
	}
	if c.Connection().Connected {
		t.Error("Connection state is connected after open failure")
	}
	if got := c.Status(); got != "Connection failed" {
		t.Errorf("Status() = %q, want %q", got, "Connection failed")
	}
}

func TestDisconnect(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	c.Disconnect()

	if c.Connection().Connected {
		t.Error("still connected after Disconnect()")
	}
	if tr.Connected() {
		t.Error("transport still open after Disconnect()")
	}
	if got := c.Status(); got != "Disconnected" {
		t.Errorf("Status() = %q, want %q", got, "Disconnected")
	}
}

func TestStatus_ReportsSentLine(t *testing.T) {
	tr := &fakeTransport{}
	c := newTestController(tr)
	defer c.Stop()
	connect(t, c)

	if err := c.AllOn(); err != nil {
		t.Fatalf("AllOn() returned error: %v", err)
	}
	if got := c.Status(); got != "Sent: 1" {
		t.Errorf("Status() = %q, want %q", got, "Sent: 1")
	}
}

func TestMetrics_CountsSuppressionAndFailures(t *testing.T) {
	tr := &fakeTransport{}
	m := metrics.New()
	c := New(&Options{
		Transport:     tr,
		LEDCounts:     []int{8},
		DebounceDelay: testDelay,
		Metrics:       m,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	defer c.Stop()

	// Not connected: write failure path.
	_ = c.SegmentOn(0)
	if got := testutil.ToFloat64(m.WriteFailures); got != 1 {
		t.Errorf("WriteFailures = %v, want 1", got)
	}

	connect(t, c)
	if got := testutil.ToFloat64(m.ConnectionState); got != 1 {
		t.Errorf("ConnectionState = %v, want 1", got)
	}

	// Unchanged commit: suppression path. current == lastSent at start.
	if err := c.CommitSegment(0); err != nil {
		t.Fatalf("CommitSegment() returned error: %v", err)
	}
	if got := testutil.ToFloat64(m.SuppressedCommits); got != 1 {
		t.Errorf("SuppressedCommits = %v, want 1", got)
	}

	if err := c.AllOff(); err != nil {
		t.Fatalf("AllOff() returned error: %v", err)
	}
	if got := testutil.ToFloat64(m.Commands.WithLabelValues("all_off")); got != 1 {
		t.Errorf("Commands{all_off} = %v, want 1", got)
	}
}
