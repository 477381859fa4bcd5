package protocol

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"segment", SetSegment{SID: 3, R: 10, G: 20, B: 30}, "S,3,10,20,30"},
		{"segment full white", SetSegment{SID: 0, R: 255, G: 255, B: 255}, "S,0,255,255,255"},
		{"segment off", SetSegment{SID: 2, R: 0, G: 0, B: 0}, "S,2,0,0,0"},
		{"pixel", SetPixel{SID: 1, Index: 7, R: 1, G: 2, B: 3}, "P,1,7,1,2,3"},
		{"all color", SetAll{R: 255, G: 128, B: 0}, "A,255,128,0"},
		{"all off", AllOff{}, "0"},
		{"all on", AllOn{}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	cmds := []Command{
		SetSegment{SID: 3, R: 10, G: 20, B: 30},
		SetPixel{SID: 4, Index: 0, R: 255, G: 1, B: 128},
		SetAll{R: 0, G: 0, B: 0},
		AllOff{},
		AllOn{},
	}

	for _, cmd := range cmds {
		got, err := Decode(cmd.Encode())
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", cmd.Encode(), err)
		}
		if got != cmd {
			t.Errorf("Decode(%q) = %#v, want %#v", cmd.Encode(), got, cmd)
		}
	}
}

func TestDecodeToleratesLineEndings(t *testing.T) {
	for _, line := range []string{"S,0,1,2,3\n", "S,0,1,2,3\r\n"} {
		got, err := Decode(line)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", line, err)
		}
		want := SetSegment{SID: 0, R: 1, G: 2, B: 3}
		if got != want {
			t.Errorf("Decode(%q) = %#v, want %#v", line, got, want)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	lines := []string{
		"",
		"S,1,2,3",     // missing channel
		"S,1,2,3,4,5", // extra field
		"S,a,b,c,d",   // non-numeric
		"S,1,2,3,4.5", // fractional
		"P,1,2,3,4",   // missing field
		"A,1,2",       // missing channel
		"0,1",         // all-off takes no fields
		"X,1,2,3",     // unknown command
		"2",           // unknown bare command
	}

	for _, line := range lines {
		if _, err := Decode(line); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", line)
		}
	}
}
