package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigWatcher_ReloadsLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.toml")
	writeFile(t, path, "[[segments]]\nled_count = 8\n")

	received := make(chan Layout, 1)
	watcher := NewConfigWatcher(
		path,
		LoadLayout,
		newTestLogger(),
		WithDebounce[Layout](50*time.Millisecond),
	)
	watcher.OnReload(func(l Layout) {
		select {
		case received <- l:
		default:
		}
	})

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[[segments]]\nled_count = 8\n\n[[segments]]\nled_count = 9\n")

	select {
	case layout := <-received:
		if len(layout.Segments) != 2 {
			t.Errorf("reloaded layout has %d segments, want 2", len(layout.Segments))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload notification received")
	}
}

func TestConfigWatcher_LoadErrorHitsErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.toml")
	writeFile(t, path, "[[segments]]\nled_count = 8\n")

	errs := make(chan error, 1)
	watcher := NewConfigWatcher(
		path,
		LoadLayout,
		newTestLogger(),
		WithDebounce[Layout](50*time.Millisecond),
		WithErrorHandler[Layout](func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	watcher.OnReload(func(Layout) {
		t.Error("handler called for a layout that failed to load")
	})

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[[segments]]\nled_count = 0\n")

	select {
	case <-errs:
	case <-time.After(3 * time.Second):
		t.Fatal("no error notification received")
	}
}

func TestConfigWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.toml")
	writeFile(t, path, "[[segments]]\nled_count = 8\n")

	watcher := NewConfigWatcher(
		path,
		LoadLayout,
		newTestLogger(),
		WithDebounce[Layout](30*time.Millisecond),
	)

	called := make(chan struct{}, 4)
	unsub := watcher.OnReload(func(Layout) {
		called <- struct{}{}
	})
	unsub()

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[[segments]]\nled_count = 9\n")

	select {
	case <-called:
		t.Error("unsubscribed handler was called")
	case <-time.After(500 * time.Millisecond):
	}
}
