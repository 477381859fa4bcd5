package logging

import (
	"context"
	"log/slog"
	"testing"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"strip":  "debug",
			"serial": "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"strip", true, true, true},
		{"serial", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()

			if got := handler.Enabled(context.Background(), slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, got, tt.wantDebug)
			}
			if got := handler.Enabled(context.Background(), slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, got, tt.wantInfo)
			}
			if got := handler.Enabled(context.Background(), slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetState()

	// Early loggers default to info and must be re-leveled by Initialize.
	early := GetLogger("early")
	if early.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("pre-initialize logger has debug enabled, want info default")
	}

	Initialize(Config{
		Level:   "info",
		Format:  "text",
		Modules: map[string]string{"early": "debug"},
	})

	if !GetLogger("early").Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Initialize did not apply module override to existing logger")
	}
}

func TestGetLoggerReturnsSameInstance(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info", Format: "text"})

	if GetLogger("strip") != GetLogger("strip") {
		t.Error("GetLogger returned different instances for the same module")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"bogus", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := parseLevel(tt.in)
		if tt.ok && (got == nil || *got != tt.want) {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.ok && got != nil {
			t.Errorf("parseLevel(%q) = %v, want nil", tt.in, *got)
		}
	}
}
