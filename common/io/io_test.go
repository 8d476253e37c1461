package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPrefixPath(t *testing.T) {
	assert.Equal(t, "data", FixPrefixPath("", "data"))
	assert.Equal(t, "root/data", FixPrefixPath("root", "data"))
	assert.Equal(t, "/abs/data", FixPrefixPath("root", "/abs/data"))
}

func TestMkDirIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.False(t, DirExists(dir))
	require.NoError(t, MkDirIfNotExists(dir))
	require.True(t, DirExists(dir))
	// second call is a no-op
	require.NoError(t, MkDirIfNotExists(dir))

	file := filepath.Join(dir, "f")
	require.False(t, FileExists(file))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	require.True(t, FileExists(file))
	require.False(t, FileExists(dir))
}
