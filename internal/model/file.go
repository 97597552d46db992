// Package model defines the data structures shared by the scanning engine.
package model

// Path represents a file system path.
type Path string

// FileRecord captures one regular file seen during a scan. Digest holds the
// quick (first-window) digest right after traversal; the grouper overwrites
// it with the full-content digest when the file lands in a candidate bucket.
type FileRecord struct {
	Path   Path
	Size   int64
	Digest string
}

// DuplicateGroup is a set of two or more files whose full-content digests
// are equal.
type DuplicateGroup struct {
	Digest string
	Files  []FileRecord
}

// Count returns the number of files in the group.
func (g DuplicateGroup) Count() int {
	return len(g.Files)
}

// WastedBytes returns the bytes reclaimable by keeping a single copy.
// Members of a confirmed group always share the same size.
func (g DuplicateGroup) WastedBytes() int64 {
	if len(g.Files) < 2 {
		return 0
	}

	return g.Files[0].Size * int64(len(g.Files)-1)
}
