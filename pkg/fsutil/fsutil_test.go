package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/fsutil"
)

const script = "extends Node\n\nvar health = 100\n"

// writeScript creates a source file in a fresh temp directory and returns
// its path.
func writeScript(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileSnapshotsMetadata(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "player.gd", script)

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, script, string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len(script)), info.Size)
	assert.Equal(t, os.FileMode(0o644), info.Mode)
	assert.NotEqual(t, [32]byte{}, info.Hash)
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "gone.gd"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "player.gd")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()

		path := writeScript(t, "player.gd", script)
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("edited file", func(t *testing.T) {
		t.Parallel()

		path := writeScript(t, "player.gd", script)
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("extends Node2D\n"), 0o644))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same-size edit with restored mod time", func(t *testing.T) {
		t.Parallel()

		path := writeScript(t, "player.gd", "var speed = 10\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		// Same byte count, same mod time: only the hash can tell.
		require.NoError(t, os.WriteFile(path, []byte("var speed = 20\n"), 0o644))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		path := writeScript(t, "player.gd", script)
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil)
		assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.CheckModified(ctx, &fsutil.FileInfo{Path: "player.gd"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestReadVerifyWriteRoundTrip walks the sequence the format command runs
// per file: snapshot read, staleness check, atomic write of the result, and
// a no-op second pass.
func TestReadVerifyWriteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeScript(t, "enemy.gd", "func attack():\n\tpass\nfunc retreat():\n\tpass\n")

	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	formatted := strings.Replace(string(content), "pass\nfunc", "pass\n\n\nfunc", 1)
	require.NotEqual(t, string(content), formatted)

	modified, err := fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	require.False(t, modified)

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(formatted), info.Mode)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(got))

	// The file is already formatted now, so the second run writes nothing.
	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte(formatted), info.Mode)
	require.NoError(t, err)
	assert.False(t, written)
}
