package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"dupscan.dev/pkg/dupscan/internal/adapter"
	m "dupscan.dev/pkg/dupscan/internal/model"
)

// Grouper confirms true duplicates among scanned records using the two-phase
// strategy: records are first bucketed by their quick digest, then only
// files that collide in a coarse bucket are re-read in full to separate real
// duplicates from prefix collisions. Unique files never pay for a full read.
type Grouper interface {
	// Group consumes the record stream and returns every confirmed
	// duplicate group. Group order follows coarse-bucket insertion order
	// and intra-group order follows traversal order. Any read failure
	// during refinement aborts the whole operation.
	Group(ctx context.Context, records <-chan m.FileRecord, threads int) ([]m.DuplicateGroup, error)
}

type grouper struct {
	hasher adapter.Hasher
}

// NewGrouper creates a Grouper that re-hashes candidates with hasher.
func NewGrouper(hasher adapter.Hasher) Grouper {
	return &grouper{hasher: hasher}
}

// Group runs the coarse phase over the incoming records, refines the
// collided buckets, and keeps only full-digest buckets with two or more
// members.
func (g *grouper) Group(ctx context.Context, records <-chan m.FileRecord, threads int) ([]m.DuplicateGroup, error) {
	coarse := newDigestIndex()

	for record := range records {
		if err := ctx.Err(); err != nil {
			// Drain so the producer can shut down.
			for range records {
			}

			return nil, err
		}

		if len(coarse.bucket(record.Digest)) > 0 {
			slog.Info("duplicate candidate found", "path", record.Path, "digest", record.Digest)
		}

		coarse.add(record)
	}

	candidates := coarse.collided()

	full, err := g.refine(ctx, candidates, threads)
	if err != nil {
		return nil, err
	}

	var groups []m.DuplicateGroup
	for _, bucket := range full.collided() {
		groups = append(groups, m.DuplicateGroup{
			Digest: bucket[0].Digest,
			Files:  bucket,
		})
	}

	slog.Info("grouping complete", "candidateBuckets", len(candidates), "groups", len(groups))

	return groups, nil
}

// refine recomputes full digests for every candidate record and rebuilds a
// separate index keyed by them. Hashing runs on up to threads workers with
// each record refined by exactly one worker; index insertion stays
// sequential in coarse order, so the result is deterministic regardless of
// worker scheduling.
func (g *grouper) refine(ctx context.Context, candidates [][]m.FileRecord, threads int) (*digestIndex, error) {
	var flat []m.FileRecord
	for _, bucket := range candidates {
		flat = append(flat, bucket...)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(normalizeThreads(threads))

	for i := range flat {
		record := &flat[i]

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			slog.Debug("re-hashing candidate", "path", record.Path)

			digest, err := g.hasher.FullDigest(record.Path)
			if err != nil {
				return fmt.Errorf("refine %s: %w", record.Path, err)
			}

			record.Digest = digest

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	full := newDigestIndex()
	for _, record := range flat {
		full.add(record)
	}

	return full, nil
}

// normalizeThreads ensures at least one refine worker.
func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}
