package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCollapsesByPath(t *testing.T) {
	var d debouncer
	d.add("b.ta", OpCreated)
	d.add("a.rs", OpModified)
	d.add("b.ta", OpModified)
	d.add("a.rs", OpRemoved)

	got := d.flush()
	assert.Equal(t, []Change{
		{Path: "a.rs", Op: OpRemoved},
		{Path: "b.ta", Op: OpCreated},
	}, got)
	assert.Nil(t, d.flush())
}

func TestInputFilter(t *testing.T) {
	f := InputFilter(".g.rs")
	assert.True(t, f("src/lib.rs"))
	assert.True(t, f("aliases.ta"))
	assert.False(t, f("aliases.g.rs"))
	assert.False(t, f("README.md"))
}

func TestRunDeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "target"), 0o755))

	w, err := New(30*time.Millisecond, InputFilter(".g.rs"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batches := make(chan []Change, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changes []Change) error {
			batches <- changes
			return nil
		})
	}()

	path := filepath.Join(sub, "a.ta")
	require.NoError(t, os.WriteFile(path, []byte("trait A = Send;\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("trait A = Send + Sync;\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.g.rs"), []byte("// out\n"), 0o600))

	select {
	case changes := <-batches:
		require.Len(t, changes, 1)
		assert.Equal(t, path, changes[0].Path)
	case <-ctx.Done():
		t.Fatal("no batch delivered")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "created", OpCreated.String())
	assert.Equal(t, "removed", OpRemoved.String())
	assert.Equal(t, "modified", OpModified.String())
}
