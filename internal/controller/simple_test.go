package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

func newBufferedCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func testGroups() []m.DuplicateGroup {
	return []m.DuplicateGroup{
		{
			Digest: "bbbb1111",
			Files: []m.FileRecord{
				{Path: "/scan/b1.txt", Size: 10, Digest: "bbbb1111"},
				{Path: "/scan/b2.txt", Size: 10, Digest: "bbbb1111"},
			},
		},
		{
			Digest: "aaaa2222",
			Files: []m.FileRecord{
				{Path: "/scan/a1.txt", Size: 7, Digest: "aaaa2222"},
				{Path: "/scan/a2.txt", Size: 7, Digest: "aaaa2222"},
				{Path: "/scan/a3.txt", Size: 7, Digest: "aaaa2222"},
			},
		},
	}
}

func TestSimpleUI_DisplayGroups_SortedByFirstMemberPath(t *testing.T) {
	cmd, out := newBufferedCmd()

	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.DisplayGroups(context.Background(), testGroups()))

	want := "aaaa2222\n" +
		"---   /scan/a1.txt\n" +
		"---   /scan/a2.txt\n" +
		"---   /scan/a3.txt\n" +
		"bbbb1111\n" +
		"---   /scan/b1.txt\n" +
		"---   /scan/b2.txt\n"

	assert.Equal(t, want, out.String())
}

func TestSimpleUI_DisplayGroups_Empty(t *testing.T) {
	cmd, out := newBufferedCmd()

	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.DisplayGroups(context.Background(), nil))

	assert.Contains(t, out.String(), "no duplicates found")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	cmd, out := newBufferedCmd()

	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.DisplaySummary(context.Background(), testGroups()))

	output := strings.ToUpper(out.String())
	assert.Contains(t, output, "AAAA2222")
	assert.Contains(t, output, "BBBB1111")
	assert.Contains(t, output, "GROUPS 2")
	// Reclaimable: 2x7 for the triple plus 1x10 for the pair.
	assert.Contains(t, output, "24")
}

func TestSimpleUI_DisplaySummary_EmptyPrintsNothing(t *testing.T) {
	cmd, out := newBufferedCmd()

	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.DisplaySummary(context.Background(), nil))

	assert.Empty(t, out.String())
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out := newBufferedCmd()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := NewSimpleUI(cmd)
	assert.Error(t, ui.DisplayGroups(ctx, testGroups()))
	assert.Empty(t, out.String())
}

func TestSortGroups_ByFirstMemberPath(t *testing.T) {
	groups := testGroups()

	sorted := sortGroups(groups)
	require.Len(t, sorted, 2)
	assert.Equal(t, "aaaa2222", sorted[0].Digest)
	assert.Equal(t, "bbbb1111", sorted[1].Digest)

	// The input slice is left untouched.
	assert.Equal(t, "bbbb1111", groups[0].Digest)
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "short", shortDigest("short"))
	assert.Equal(t, "aaaaaaaaaaaa", shortDigest(strings.Repeat("a", 64)))
}
