package fsutil_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/l0ser140/GDScript-formatter/pkg/fsutil"
)

// FuzzWriteReadBack drives the write half of a formatting run with arbitrary
// bytes: an atomic write followed by a snapshot read must hand back the same
// content, and the fresh snapshot must not look modified.
func FuzzWriteReadBack(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("extends Node\n"))
	f.Add([]byte("func _ready():\n\tpass\n"))
	f.Add([]byte("var s = \"a;b\"\n"))
	f.Add([]byte{0x00, 0x01, 0xff, 0xfe})
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out.gd")

		require.NoError(t, fsutil.WriteAtomic(ctx, path, content, 0o644))

		got, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.True(t, bytes.Equal(content, got), "content mismatch after round trip")

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		require.False(t, modified, "freshly read file reported modified")
	})
}
