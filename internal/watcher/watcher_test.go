package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherTriggersRebuildOnFileChange(t *testing.T) {
	dir := t.TempDir()

	var rebuilds int32
	w, err := New([]string{dir}, 20*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&rebuilds, 1)
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "floor0.geojson"), []byte("{}"), 0o644))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&rebuilds) >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherCoalescesBurstIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()

	var rebuilds int32
	w, err := New([]string{dir}, 100*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&rebuilds, 1)
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "floor0.geojson"), []byte("{}"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&rebuilds) == 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&rebuilds))
}

func TestWatcherStartIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, 10*time.Millisecond, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Start(ctx)
}
