// Package controller provides the output surfaces for reporting duplicate
// groups.
package controller

import (
	"context"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

// UI defines the interface for presenting scan results. Implementations can
// use different output methods (plain text, interactive pager).
type UI interface {
	// DisplayGroups prints every confirmed duplicate group.
	DisplayGroups(ctx context.Context, groups []m.DuplicateGroup) error

	// DisplaySummary prints aggregate numbers for the finished scan.
	DisplaySummary(ctx context.Context, groups []m.DuplicateGroup) error
}

// NewUI picks the pager when stdout is interactive and the plain printer
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewPagerUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// sortGroups orders groups by the path of their first member. Display code
// owns ordering; the engine reports groups in traversal order.
func sortGroups(groups []m.DuplicateGroup) []m.DuplicateGroup {
	sorted := make([]m.DuplicateGroup, len(groups))
	copy(sorted, groups)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Files[0].Path < sorted[j].Files[0].Path
	})

	return sorted
}
