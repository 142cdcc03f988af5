// internal/cli/table.go
package evaloop

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/util"
)

var (
	upGlyph     = color.New(color.FgGreen).SprintFunc()
	downGlyph   = color.New(color.FgRed).SprintFunc()
	stableGlyph = color.New(color.FgHiBlack).SprintFunc()
	warnBanner  = color.New(color.FgBlack, color.BgYellow).SprintFunc()
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	titleStyle  = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
)

var tableHeaders = []string{"Rank", "Model", "Organization", "ASL", "Pass", "Time", "Robust", "Δ"}

// maxNameWidth caps the model column so long checkpoint names do not push the table off screen.
const maxNameWidth = 40

func coloredGlyph(change leaderboard.RankChange) string {
	switch change.Direction {
	case leaderboard.Up:
		return upGlyph(change.Glyph)
	case leaderboard.Down:
		return downGlyph(change.Glyph)
	default:
		return stableGlyph(change.Glyph)
	}
}

func rowCells(r leaderboard.Row) []string {
	return []string{
		strconv.Itoa(r.Rank),
		util.Truncate(r.Name, maxNameWidth),
		r.Organization,
		r.ASLText,
		r.SuccessText,
		r.AvgTimeText,
		r.RobustnessText,
		r.Change.Glyph,
	}
}

// writeTable renders rows as aligned columns. The last column carries the
// coloured rank-change glyph, so it is padded before colouring.
func writeTable(out io.Writer, rows []leaderboard.Row) {
	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, cell := range rowCells(r) {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(tableHeaders))
	for i, h := range tableHeaders {
		header[i] = util.PadRight(h, widths[i])
	}
	fmt.Fprintln(out, headerStyle.Render(strings.Join(header, "  ")))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	fmt.Fprintln(out, strings.Join(sep, "  "))

	for _, r := range rows {
		cells := rowCells(r)
		line := make([]string, len(cells))
		last := len(cells) - 1
		for i, cell := range cells[:last] {
			line[i] = util.PadRight(cell, widths[i])
		}
		line[last] = coloredGlyph(r.Change)
		fmt.Fprintln(out, strings.Join(line, "  "))
	}
}

// writeBanner prints a warning line when the results are degraded.
func writeBanner(out io.Writer, outcome loader.Outcome) {
	if !outcome.Degraded() {
		return
	}
	fmt.Fprintln(out, warnBanner(" DEGRADED DATA ")+" "+outcome.Summary())
	fmt.Fprintln(out)
}
