package adapter

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

const (
	// quickHashWindow bounds how much of a file the quick digest covers.
	quickHashWindow = 1 << 20

	// fullHashChunkSize is the read size used when streaming whole files
	// through the hash.
	fullHashChunkSize = 1 << 20
)

// Hasher computes content digests for files. Quick digests cover at most the
// first window of a file and are only good enough to form candidate buckets;
// full digests cover every byte and are authoritative for equality
// decisions. Both produce fixed-width lowercase hex strings usable as map
// keys.
type Hasher interface {
	// QuickDigest hashes at most the first window of the file. Files
	// shorter than the window are hashed in full.
	QuickDigest(path m.Path) (string, error)

	// FullDigest hashes the entire file content.
	FullDigest(path m.Path) (string, error)
}

// Blake3Hasher is the concrete Hasher backed by BLAKE3. The digest is never
// persisted or compared across runs, so the algorithm only needs to be
// deterministic and collision-resistant.
type Blake3Hasher struct{}

// NewBlake3Hasher constructs a Blake3Hasher ready to be wired into the
// scanner and grouper.
func NewBlake3Hasher() *Blake3Hasher {
	return &Blake3Hasher{}
}

// QuickDigest returns the digest of the first window of the file at path.
func (h *Blake3Hasher) QuickDigest(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = f.Close()
	}()

	hash := blake3.New()
	if _, err := io.Copy(hash, io.LimitReader(f, quickHashWindow)); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// FullDigest streams the whole file through the hash in fixed-size chunks
// and returns the accumulated digest.
func (h *Blake3Hasher) FullDigest(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = f.Close()
	}()

	hash := blake3.New()
	buf := make([]byte, fullHashChunkSize)

	for {
		n, err := f.Read(buf)
		if n > 0 {
			_, _ = hash.Write(buf[:n])
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
