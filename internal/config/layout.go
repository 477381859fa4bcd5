package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LayoutSegment describes one segment of the strip.
type LayoutSegment struct {
	LEDCount int `toml:"led_count" json:"led_count"`
}

// Layout is the strip layout file: the ordered list of segments on the data
// line. Segment ids are implicit positions. The layout is read once at
// startup — segments are fixed for the process lifetime.
type Layout struct {
	Segments []LayoutSegment `toml:"segments" json:"segments"`
}

// DefaultLayout matches the reference hardware: one 8-LED segment followed
// by four 9-LED segments on a single data line.
func DefaultLayout() Layout {
	return Layout{
		Segments: []LayoutSegment{
			{LEDCount: 8},
			{LEDCount: 9},
			{LEDCount: 9},
			{LEDCount: 9},
			{LEDCount: 9},
		},
	}
}

// LoadLayout reads the strip layout from a TOML file. A missing file is not
// an error: the default layout is returned so the service runs out of the
// box. A present but malformed or empty file is an error — silently driving
// the wrong strip is worse than failing to start.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultLayout(), nil
		}
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}

	var layout Layout
	if err := toml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(layout.Segments) == 0 {
		return Layout{}, fmt.Errorf("layout %s defines no segments", path)
	}
	for i, seg := range layout.Segments {
		if seg.LEDCount <= 0 {
			return Layout{}, fmt.Errorf("layout %s: segment %d has invalid led_count %d", path, i, seg.LEDCount)
		}
	}
	return layout, nil
}

// LEDCounts flattens the layout into one LED count per segment, in sid order.
func (l Layout) LEDCounts() []int {
	counts := make([]int, len(l.Segments))
	for i, seg := range l.Segments {
		counts[i] = seg.LEDCount
	}
	return counts
}
