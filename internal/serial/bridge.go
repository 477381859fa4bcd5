// Package serial owns the byte-stream link to the strip's microcontroller.
package serial

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// settleDelay absorbs the auto-reset an Arduino-class board performs when its
// serial port is opened; lines written before the sketch is back up are lost.
const settleDelay = 2 * time.Second

// Transport is the write side of the serial link as seen by the controller.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Open closes any existing connection first, then opens the named port
	// at the given baud rate. The link is not ready until Open returns.
	Open(port string, baud int) error

	// Close releases the port. It is a no-op when already closed and never
	// reports an error: nothing useful can be done with a close failure.
	Close()

	// WriteLine writes one protocol line, appending the newline terminator
	// if absent, and flushes before returning. It returns false without
	// writing when the link is not open.
	WriteLine(text string) bool

	// Connected reports whether the link is currently open.
	Connected() bool
}

// Bridge implements Transport over a real serial port.
type Bridge struct {
	mu     sync.Mutex
	port   serial.Port
	logger *slog.Logger
	settle time.Duration
}

// NewBridge creates a Bridge with the default microcontroller settle delay.
func NewBridge(logger *slog.Logger) *Bridge {
	return &Bridge{
		logger: logger,
		settle: settleDelay,
	}
}

// Open implements Transport.
func (b *Bridge) Open(port string, baud int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closeLocked()

	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return fmt.Errorf("open %s: %w", port, err)
	}
	b.port = p

	b.logger.Debug("Port opened, waiting for board reset", "port", port, "baud", baud)
	time.Sleep(b.settle)
	return nil
}

// Close implements Transport.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked()
}

// closeLocked releases the port handle, swallowing close-time errors.
// Callers must hold b.mu.
func (b *Bridge) closeLocked() {
	if b.port == nil {
		return
	}
	if err := b.port.Close(); err != nil {
		b.logger.Debug("Error closing port", "error", err)
	}
	b.port = nil
}

// WriteLine implements Transport.
func (b *Bridge) WriteLine(text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.port == nil {
		return false
	}

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	data := []byte(text)
	for len(data) > 0 {
		n, err := b.port.Write(data)
		if err != nil {
			b.logger.Warn("Serial write failed", "error", err)
			b.closeLocked()
			return false
		}
		data = data[n:]
	}

	if err := b.port.Drain(); err != nil {
		b.logger.Warn("Serial drain failed", "error", err)
		return false
	}
	return true
}

// Connected implements Transport.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.port != nil
}
