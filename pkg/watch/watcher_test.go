package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))
	return path
}

func TestNewWatcher(t *testing.T) {
	path := tempFile(t, "app.py")

	tests := []struct {
		name     string
		debounce time.Duration
		want     time.Duration
	}{
		{"default debounce", 0, DefaultDebounce},
		{"custom debounce", time.Second, time.Second},
		{"negative debounce defaults", -time.Second, DefaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWatcher(path, tt.debounce, nil)
			require.NoError(t, err)
			defer w.Stop()

			assert.NotNil(t, w.fsWatcher)
			assert.Equal(t, tt.want, w.debounce)
			assert.True(t, filepath.IsAbs(w.Path()))
			assert.NotNil(t, w.logger)
		})
	}
}

func TestNewWatcher_Errors(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.py"), 0, nil)
	assert.Error(t, err)

	_, err = NewWatcher(t.TempDir(), 0, nil)
	assert.Error(t, err, "directories are rejected")
}

func TestWatcher_HandleEvent(t *testing.T) {
	path := tempFile(t, "app.py")
	w, err := NewWatcher(path, time.Hour, nil)
	require.NoError(t, err)
	defer w.Stop()

	tests := []struct {
		name    string
		event   fsnotify.Event
		pending bool
	}{
		{"write", fsnotify.Event{Name: w.Path(), Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: w.Path(), Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: w.Path(), Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: w.Path(), Op: fsnotify.Remove}, false},
		{"sibling", fsnotify.Event{Name: filepath.Join(filepath.Dir(w.Path()), "other.py"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.pending = time.Time{}
			w.handleEvent(tt.event)
			assert.Equal(t, tt.pending, !w.pending.IsZero())
		})
	}
}

func TestWatcher_TakeReady(t *testing.T) {
	path := tempFile(t, "app.py")
	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.False(t, w.takeReady(), "nothing pending")

	w.pending = time.Now()
	assert.False(t, w.takeReady(), "still inside debounce window")

	w.pending = time.Now().Add(-time.Second)
	assert.True(t, w.takeReady())
	assert.True(t, w.pending.IsZero(), "taking clears the queue")
	assert.False(t, w.takeReady())
}

func TestWatcher_Start(t *testing.T) {
	path := tempFile(t, "app.py")
	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	changed := make(chan string, 4)
	w.SetCallback(func(_ context.Context, p string) {
		calls.Add(1)
		changed <- p
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give fsnotify time to register the directory.
	time.Sleep(100 * time.Millisecond)

	sibling := filepath.Join(filepath.Dir(path), "other.py")
	require.NoError(t, os.WriteFile(sibling, []byte("y = 2\n"), 0644))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0644))
	}

	select {
	case got := <-changed:
		assert.Equal(t, w.Path(), got)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked")
	}

	assert.GreaterOrEqual(t, calls.Load(), int32(1))

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestWatcher_StopEndsStart(t *testing.T) {
	path := tempFile(t, "app.py")
	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}

	assert.NoError(t, w.Stop(), "second Stop is a no-op")
}
