// Package protocol implements the line-based ASCII protocol spoken by the
// strip firmware. One command per line, newline-terminated, fields separated
// by commas, integers rendered in plain decimal. The codec is a pure mapping
// between typed commands and wire lines; it performs no I/O and no range
// validation — callers clamp channel values before encoding.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a single wire command understood by the firmware.
type Command interface {
	// Encode renders the command as a wire line without the trailing newline.
	Encode() string
}

// SetSegment sets every LED of one segment to a single color.
// Wire form: S,<sid>,<R>,<G>,<B>
type SetSegment struct {
	SID int
	R   int
	G   int
	B   int
}

// SetPixel sets a single LED within a segment.
// Wire form: P,<sid>,<idx>,<R>,<G>,<B>
//
// The controller never emits this command, but the firmware understands it
// and the send subcommand accepts it.
type SetPixel struct {
	SID   int
	Index int
	R     int
	G     int
	B     int
}

// SetAll sets every LED on the strip to a single color.
// Wire form: A,<R>,<G>,<B>
type SetAll struct {
	R int
	G int
	B int
}

// AllOff turns every LED off. Wire form: 0
type AllOff struct{}

// AllOn sets every LED to full white. Wire form: 1
type AllOn struct{}

// Encode implements Command.
func (c SetSegment) Encode() string {
	return fmt.Sprintf("S,%d,%d,%d,%d", c.SID, c.R, c.G, c.B)
}

// Encode implements Command.
func (c SetPixel) Encode() string {
	return fmt.Sprintf("P,%d,%d,%d,%d,%d", c.SID, c.Index, c.R, c.G, c.B)
}

// Encode implements Command.
func (c SetAll) Encode() string {
	return fmt.Sprintf("A,%d,%d,%d", c.R, c.G, c.B)
}

// Encode implements Command.
func (AllOff) Encode() string { return "0" }

// Encode implements Command.
func (AllOn) Encode() string { return "1" }

// Decode parses one wire line back into a typed command. A trailing newline
// (or CRLF) is tolerated. Decode is the inverse of Encode for every command
// the codec can produce.
func Decode(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, fmt.Errorf("protocol: empty line")
	}

	fields := strings.Split(line, ",")
	switch fields[0] {
	case "0":
		if len(fields) != 1 {
			return nil, fmt.Errorf("protocol: all-off takes no fields: %q", line)
		}
		return AllOff{}, nil

	case "1":
		if len(fields) != 1 {
			return nil, fmt.Errorf("protocol: all-on takes no fields: %q", line)
		}
		return AllOn{}, nil

	case "S":
		vals, err := intFields(fields[1:], 4)
		if err != nil {
			return nil, fmt.Errorf("protocol: bad segment command %q: %w", line, err)
		}
		return SetSegment{SID: vals[0], R: vals[1], G: vals[2], B: vals[3]}, nil

	case "P":
		vals, err := intFields(fields[1:], 5)
		if err != nil {
			return nil, fmt.Errorf("protocol: bad pixel command %q: %w", line, err)
		}
		return SetPixel{SID: vals[0], Index: vals[1], R: vals[2], G: vals[3], B: vals[4]}, nil

	case "A":
		vals, err := intFields(fields[1:], 3)
		if err != nil {
			return nil, fmt.Errorf("protocol: bad all-color command %q: %w", line, err)
		}
		return SetAll{R: vals[0], G: vals[1], B: vals[2]}, nil

	default:
		return nil, fmt.Errorf("protocol: unknown command %q", fields[0])
	}
}

// intFields parses exactly want decimal integer fields.
func intFields(fields []string, want int) ([]int, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("want %d fields, got %d", want, len(fields))
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}
