package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSProvider(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go", "main.snippet"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	p := NewFSProvider(root)
	assert.Equal(t, root, p.GetBasePath())

	files, err := p.ListDir(".")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, File{Name: "a.txt", Path: "a.txt", Type: TypeFile, Size: 5, Modified: files[0].Modified}, files[0])
	assert.True(t, files[1].IsDir())
	assert.Equal(t, "go", files[1].Path)

	files, err = p.ListDir("go")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "go/main.snippet", files[0].Path)

	content, err := p.ReadFile("go/main.snippet")
	require.NoError(t, err)
	assert.Equal(t, "package main", string(content))

	exists, err := p.Exists("go")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = p.Exists("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFakeProvider(t *testing.T) {
	p := NewFakeProvider()
	p.AddFile("snippets/web/app.js", "const x = 1;")
	p.AddFile("notes.txt", "hello")

	root, err := p.ListDir(".")
	require.NoError(t, err)
	require.Len(t, root, 2)
	assert.Equal(t, "notes.txt", root[0].Name)
	assert.Equal(t, "snippets", root[1].Name)
	assert.True(t, root[1].IsDir())

	web, err := p.ListDir("snippets/web")
	require.NoError(t, err)
	require.Len(t, web, 1)
	assert.Equal(t, "snippets/web/app.js", web[0].Path)

	content, err := p.ReadFile("snippets/web/app.js")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", string(content))

	_, err = p.ReadFile("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = p.ListDir("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
