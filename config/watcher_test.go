package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/vexpool"
)

func TestWatcher_ReappliesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vexpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_threads: 2\n"), 0o644))

	r := vexpool.NewRegistry()
	w, err := NewWatcher(path, r)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	defer func() {
		cancel()
		<-w.Done()
	}()

	// When: the config file is rewritten with a new pool size
	require.NoError(t, os.WriteFile(path, []byte("search_threads: 5\n"), 0o644))

	// Then: the search pool is created and sized from the new file
	require.Eventually(t, func() bool {
		p := r.Lookup(vexpool.RoleSearch)
		return p != nil && p.Size() == 5
	}, 5*time.Second, 50*time.Millisecond)

	r.Lookup(vexpool.RoleSearch).Close()
}

func TestWatcher_CoalescesEventBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vexpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_threads: 2\n"), 0o644))

	r := vexpool.NewRegistry()
	w, err := NewWatcher(path, r)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	defer func() {
		cancel()
		<-w.Done()
	}()

	// A burst of rewrites keeps extending the debounce window; the final
	// contents win
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("search_threads: 7\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		p := r.Lookup(vexpool.RoleSearch)
		return p != nil && p.Size() == 7
	}, 5*time.Second, 50*time.Millisecond)

	r.Lookup(vexpool.RoleSearch).Close()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vexpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_threads: 2\n"), 0o644))

	r := vexpool.NewRegistry()
	w, err := NewWatcher(path, r)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	defer func() {
		cancel()
		<-w.Done()
	}()

	// Writes to unrelated files in the same directory trigger nothing
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("search_threads: 9\n"), 0o644))

	time.Sleep(2 * debounceWindow)
	require.Nil(t, r.Lookup(vexpool.RoleSearch))
}
