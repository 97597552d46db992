package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

// memberMarker prefixes each member path printed under its group digest.
const memberMarker = "---   "

// SimpleUI implements UI using cobra Command's print helpers.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayGroups prints each group as its shared full digest followed by the
// member paths, groups ordered by the path of their first member.
func (s *SimpleUI) DisplayGroups(ctx context.Context, groups []m.DuplicateGroup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(groups) == 0 {
		s.printf("no duplicates found\n")
		return nil
	}

	for _, group := range sortGroups(groups) {
		s.printf("%s\n", group.Digest)

		for _, file := range group.Files {
			s.printf("%s%s\n", memberMarker, file.Path)
		}
	}

	return nil
}

// DisplaySummary renders a per-group table with footer totals. Nothing is
// printed when there are no groups.
func (s *SimpleUI) DisplaySummary(ctx context.Context, groups []m.DuplicateGroup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(groups) == 0 {
		return nil
	}

	s.printf("\n%s", renderSummaryTable(sortGroups(groups)))

	return nil
}

func renderSummaryTable(groups []m.DuplicateGroup) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Digest", "Files", "Size", "Reclaimable"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	totalFiles := 0

	var totalWasted int64

	for _, group := range groups {
		table.Append([]string{
			shortDigest(group.Digest),
			fmt.Sprintf("%d", group.Count()),
			fmt.Sprintf("%d", group.Files[0].Size),
			fmt.Sprintf("%d", group.WastedBytes()),
		})

		totalFiles += group.Count()
		totalWasted += group.WastedBytes()
	}

	table.SetFooter([]string{
		fmt.Sprintf("Groups %d", len(groups)),
		fmt.Sprintf("%d", totalFiles),
		"",
		fmt.Sprintf("%d", totalWasted),
	})

	table.Render()

	return tableBuffer.String()
}

// shortDigest truncates a digest for table display.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}

	return digest
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
