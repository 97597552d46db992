package adapter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

func writeFile(t *testing.T, dir, name string, content []byte) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return m.Path(path)
}

func TestQuickDigest_ShortFileMatchesFullDigest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "short.txt", []byte("hello"))

	hasher := NewBlake3Hasher()

	quick, err := hasher.QuickDigest(path)
	require.NoError(t, err)

	full, err := hasher.FullDigest(path)
	require.NoError(t, err)

	assert.Equal(t, full, quick)
}

func TestQuickDigest_IgnoresBytesBeyondWindow(t *testing.T) {
	dir := t.TempDir()

	prefix := bytes.Repeat([]byte{0xAB}, quickHashWindow)

	a := make([]byte, 0, 2*quickHashWindow)
	a = append(a, prefix...)
	a = append(a, bytes.Repeat([]byte{0x01}, quickHashWindow)...)

	b := make([]byte, 0, 2*quickHashWindow)
	b = append(b, prefix...)
	b = append(b, bytes.Repeat([]byte{0x02}, quickHashWindow)...)

	pathA := writeFile(t, dir, "x.bin", a)
	pathB := writeFile(t, dir, "y.bin", b)

	hasher := NewBlake3Hasher()

	quickA, err := hasher.QuickDigest(pathA)
	require.NoError(t, err)

	quickB, err := hasher.QuickDigest(pathB)
	require.NoError(t, err)

	assert.Equal(t, quickA, quickB)

	fullA, err := hasher.FullDigest(pathA)
	require.NoError(t, err)

	fullB, err := hasher.FullDigest(pathB)
	require.NoError(t, err)

	assert.NotEqual(t, fullA, fullB)
}

func TestFullDigest_StableAcrossChunkedReads(t *testing.T) {
	// Content larger than one chunk so the accumulator folds several reads.
	dir := t.TempDir()
	content := bytes.Repeat([]byte("dupscan"), (fullHashChunkSize/7)+1024)
	path := writeFile(t, dir, "big.bin", content)

	hasher := NewBlake3Hasher()

	first, err := hasher.FullDigest(path)
	require.NoError(t, err)

	second, err := hasher.FullDigest(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDigest_IsFixedWidthHex(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", []byte("content"))

	hasher := NewBlake3Hasher()

	quick, err := hasher.QuickDigest(path)
	require.NoError(t, err)

	full, err := hasher.FullDigest(path)
	require.NoError(t, err)

	assert.Regexp(t, "^[0-9a-f]{64}$", quick)
	assert.Regexp(t, "^[0-9a-f]{64}$", full)
}

func TestHasher_MissingFile(t *testing.T) {
	hasher := NewBlake3Hasher()
	missing := m.Path(filepath.Join(t.TempDir(), "gone"))

	_, err := hasher.QuickDigest(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = hasher.FullDigest(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestQuickDigest_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty", nil)

	hasher := NewBlake3Hasher()

	quick, err := hasher.QuickDigest(path)
	require.NoError(t, err)
	assert.NotEmpty(t, quick)
}
