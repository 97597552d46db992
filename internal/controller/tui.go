package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "dupscan.dev/pkg/dupscan/internal/model"
)

// PagerUI implements UI using Bubble Tea so large duplicate reports can be
// paged through interactively.
type PagerUI struct {
	output io.Writer
}

// NewPagerUI creates a new PagerUI writing to output.
func NewPagerUI(output io.Writer) *PagerUI {
	return &PagerUI{output: output}
}

// DisplayGroups pages through the group report when it does not fit the
// terminal; short reports are printed directly.
func (p *PagerUI) DisplayGroups(ctx context.Context, groups []m.DuplicateGroup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newGroupPagerModel(sortGroups(groups))

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If the report is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplaySummary prints the same summary table as the plain UI; it is short
// enough to never need paging.
func (p *PagerUI) DisplaySummary(ctx context.Context, groups []m.DuplicateGroup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(groups) == 0 {
		return nil
	}

	_, err := fmt.Fprintf(p.output, "\n%s", renderSummaryTable(sortGroups(groups)))

	return err
}

// groupPagerModel is the Bubble Tea model paging through the flattened group
// report lines.
type groupPagerModel struct {
	lines    []string
	groups   int
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newGroupPagerModel(groups []m.DuplicateGroup) groupPagerModel {
	var lines []string

	for _, group := range groups {
		lines = append(lines, group.Digest)

		for _, file := range group.Files {
			lines = append(lines, memberMarker+string(file.Path))
		}
	}

	return groupPagerModel{
		lines:  lines,
		groups: len(groups),
	}
}

func (gpm groupPagerModel) Init() tea.Cmd {
	return nil
}

func (gpm groupPagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		gpm.height = msg.Height
		gpm.width = msg.Width

		return gpm, nil

	case tea.KeyMsg:
		return gpm.handleKeyPress(msg)
	}

	return gpm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (gpm groupPagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		gpm.quitting = true
		return gpm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		gpm.quitting = true
		return gpm, tea.Quit

	case "down", "j":
		gpm.offset++

		maxOffset := gpm.maxOffset()
		if gpm.offset > maxOffset {
			gpm.offset = maxOffset
		}

		return gpm, nil

	case "up", "k":
		gpm.offset--
		if gpm.offset < 0 {
			gpm.offset = 0
		}

		return gpm, nil

	case "g", "home":
		gpm.offset = 0

		return gpm, nil

	case "G", "end":
		gpm.offset = gpm.maxOffset()

		return gpm, nil

	case "d", "pgdown":
		gpm.offset += gpm.itemsPerPage()

		maxOffset := gpm.maxOffset()
		if gpm.offset > maxOffset {
			gpm.offset = maxOffset
		}

		return gpm, nil

	case "u", "pgup":
		gpm.offset -= gpm.itemsPerPage()
		if gpm.offset < 0 {
			gpm.offset = 0
		}

		return gpm, nil
	}

	return gpm, nil
}

// itemsPerPage calculates how many report lines fit on screen.
func (gpm groupPagerModel) itemsPerPage() int {
	if gpm.height == 0 {
		return 10 // Default
	}
	// Reserve space for:
	// - Title: 2 lines (summary + empty)
	// - Footer: 3 lines (empty + page + help)
	// - Top margin: 1 line
	reserved := 6

	available := gpm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (gpm groupPagerModel) maxOffset() int {
	perPage := gpm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(gpm.lines) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the report is too large to fit on screen.
func (gpm groupPagerModel) needsPagination() bool {
	if len(gpm.lines) == 0 {
		return false
	}

	return len(gpm.lines) > gpm.itemsPerPage() && gpm.height > 0
}

func (gpm groupPagerModel) View() string {
	var b strings.Builder

	if gpm.groups == 0 {
		b.WriteString("no duplicates found\n")
		return b.String()
	}

	fmt.Fprintf(&b, "duplicate groups: %d\n\n", gpm.groups)

	gpm.renderGroupLines(&b)

	return b.String()
}

func (gpm groupPagerModel) renderGroupLines(b *strings.Builder) {
	totalLines := len(gpm.lines)

	// Calculate pagination
	itemsPerPage := gpm.itemsPerPage()
	needsPagination := totalLines > itemsPerPage && gpm.height > 0

	start := gpm.offset

	end := start + itemsPerPage
	if end > totalLines {
		end = totalLines
	}

	if start >= totalLines {
		start = totalLines - 1
		if start < 0 {
			start = 0
		}
	}

	// Show lines for current page
	displayLines := gpm.lines

	if needsPagination {
		displayLines = gpm.lines[start:end]
	}

	for _, line := range displayLines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Footer with navigation help
	if needsPagination {
		b.WriteString("\n")

		currentPage := (gpm.offset / itemsPerPage) + 1
		totalPages := (totalLines + itemsPerPage - 1) / itemsPerPage
		fmt.Fprintf(b, "Page %d/%d | Showing %d-%d of %d\n",
			currentPage, totalPages, start+1, end, totalLines)
		b.WriteString("↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}
}
