package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: mocha\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	w, err := NewWatcher(configPath)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	if err := os.WriteFile(configPath, []byte("theme: latte\nmax_visible: 3\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events:
			if ev.Err != nil {
				// A write can be observed before the content lands; wait for the next one
				continue
			}
			if ev.Config.Theme == "latte" && ev.Config.MaxVisible == 3 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload event")
		}
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: mocha\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	w, err := NewWatcher(configPath)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	if err := os.WriteFile(configPath, []byte("theme: neon\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events:
			if ev.Err == nil {
				// Truncation can be observed before the new content
				continue
			}
			if ev.Config != nil {
				t.Error("invalid reload should not carry a config")
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for invalid reload event")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: mocha\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	w, err := NewWatcher(configPath)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	t.Cleanup(func() { _ = w.Stop() })

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events:
		t.Fatalf("unexpected reload event: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}

	if w.Path() != configPath {
		t.Errorf("Path() = %q, want %q", w.Path(), configPath)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() should be a no-op, got %v", err)
	}
}
