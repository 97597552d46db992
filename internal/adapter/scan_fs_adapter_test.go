package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

func TestWalk_VisitsAllEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o750))
	writeFile(t, dir, "a.txt", []byte("a"))
	writeFile(t, filepath.Join(dir, "nested"), "b.txt", []byte("b"))

	fs := NewLocalScanFSAdapter()

	var files []string

	err := fs.Walk(m.Path(dir), func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)

		if info.Mode().IsRegular() {
			files = append(files, filepath.Base(path))
		}

		return nil
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, files)
}

func TestWalk_CallbackErrorAbortsWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("a"))

	fs := NewLocalScanFSAdapter()

	sentinel := errors.New("stop")

	err := fs.Walk(m.Path(dir), func(string, os.FileInfo, error) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", []byte("abc"))

	fs := NewLocalScanFSAdapter()

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())

	_, err = fs.Stat(m.Path(filepath.Join(dir, "missing")))
	assert.Error(t, err)
}
