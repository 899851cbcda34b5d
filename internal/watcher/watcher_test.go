package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnTargetWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "weights.yaml")
	require.NoError(t, os.WriteFile(target, []byte("imprint: {}\n"), 0o644))

	var fired atomic.Int32
	w, err := New(target, func() { fired.Add(1) })
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	// Give the watch time to establish before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("xp: {}\n"), 0o644))

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 25*time.Millisecond)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "weights.yaml")

	var fired atomic.Int32
	w, err := New(target, func() { fired.Add(1) })
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	require.Zero(t, fired.Load())
}

func TestWatcher_StartStopIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "weights.yaml"), nil)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
