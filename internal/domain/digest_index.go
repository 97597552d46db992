package domain

import (
	m "dupscan.dev/pkg/dupscan/internal/model"
)

// digestIndex is an insertion-order-preserving multimap from digest to the
// records carrying it. Records sharing a key are equal under the hash
// function used to build the index; for quick digests that does not imply
// equal content beyond the hashed prefix.
type digestIndex struct {
	order   []string
	buckets map[string][]m.FileRecord
}

func newDigestIndex() *digestIndex {
	return &digestIndex{
		buckets: make(map[string][]m.FileRecord),
	}
}

// add appends rec to its digest bucket. Both bucket membership and key order
// follow insertion order.
func (ix *digestIndex) add(rec m.FileRecord) {
	if _, ok := ix.buckets[rec.Digest]; !ok {
		ix.order = append(ix.order, rec.Digest)
	}

	ix.buckets[rec.Digest] = append(ix.buckets[rec.Digest], rec)
}

// bucket returns the records recorded under digest.
func (ix *digestIndex) bucket(digest string) []m.FileRecord {
	return ix.buckets[digest]
}

// collided returns every bucket with at least two members, in key insertion
// order.
func (ix *digestIndex) collided() [][]m.FileRecord {
	var out [][]m.FileRecord

	for _, digest := range ix.order {
		if bucket := ix.buckets[digest]; len(bucket) > 1 {
			out = append(out, bucket)
		}
	}

	return out
}
