// internal/tui/browser.go
// Package tui provides the interactive leaderboard browser.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/util"
)

const allOrganizations = "all"

var columns = []table.Column{
	{Title: "Rank", Width: 5},
	{Title: "Model", Width: 28},
	{Title: "Organization", Width: 16},
	{Title: "ASL", Width: 8},
	{Title: "Pass", Width: 7},
	{Title: "Time", Width: 7},
	{Title: "Δ", Width: 5},
}

// model is the Bubble Tea model for the leaderboard browser.
type model struct {
	models        []results.ModelResult
	visible       []results.ModelResult
	summary       string
	degraded      bool
	sortIndex     int
	descending    bool
	organizations []string
	orgIndex      int
	table         table.Model
	width, height int
	err           error
}

// newModel builds a browser over the outcome's models, sorted by ASL descending.
func newModel(outcome loader.Outcome) *model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	t.SetStyles(styles)

	m := &model{
		models:        outcome.Document.Models,
		summary:       outcome.Summary(),
		degraded:      outcome.Degraded(),
		descending:    true,
		organizations: append([]string{allOrganizations}, leaderboard.Organizations(outcome.Document.Models)...),
		table:         t,
	}
	m.refresh()
	return m
}

func (m *model) sortKey() string {
	return leaderboard.SortKeys[m.sortIndex]
}

func (m *model) organization() string {
	return m.organizations[m.orgIndex]
}

// refresh re-applies the filter and sort and rebuilds the table rows.
func (m *model) refresh() {
	filter := leaderboard.Filter{}
	if org := m.organization(); org != allOrganizations {
		filter.Organization = org
	}
	sorted, err := leaderboard.Sort(filter.Apply(m.models), m.sortKey(), m.descending)
	if err != nil {
		m.err = err
		return
	}
	m.visible = sorted

	rows := make([]table.Row, 0, len(sorted))
	for _, r := range leaderboard.BuildRows(sorted) {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Rank),
			util.Truncate(r.Name, columns[1].Width),
			util.Truncate(r.Organization, columns[2].Width),
			r.ASLText,
			r.SuccessText,
			r.AvgTimeText,
			r.Change.Glyph,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles sort, filter and navigation keys.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "s":
			m.sortIndex = (m.sortIndex + 1) % len(leaderboard.SortKeys)
			m.refresh()
			return m, nil
		case "d":
			m.descending = !m.descending
			m.refresh()
			return m, nil
		case "o":
			m.orgIndex = (m.orgIndex + 1) % len(m.organizations)
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the model under the cursor.
func (m *model) selected() (results.ModelResult, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return results.ModelResult{}, false
	}
	return m.visible[i], true
}

// View renders the header, table, detail line and key help.
func (m *model) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	direction := "asc"
	if m.descending {
		direction = "desc"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("EvaLoop Leaderboard | sort: %s %s | org: %s | %d/%d models",
		m.sortKey(), direction, m.organization(), len(m.visible), len(m.models))))
	b.WriteString("\n")
	if m.degraded {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1)
		b.WriteString(warn.Render("Degraded data: " + m.summary))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if sel, ok := m.selected(); ok {
		b.WriteString(detailLine(sel, m.width))
		b.WriteString("\n")
	}
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(help.Render("↑/↓ move • s sort • d direction • o organization • q quit"))
	return b.String()
}

// detailLine summarizes the selected model, wrapped to width cells when width is known.
func detailLine(m results.ModelResult, width int) string {
	row := leaderboard.BuildRow(m)
	parts := []string{
		fmt.Sprintf("%s: %s", row.Name, row.Change.Title()),
		"robustness " + row.RobustnessText,
		"trend " + row.Trend,
	}
	if m.Details != nil {
		parts = append(parts, fmt.Sprintf("%d/%d passed", m.Details.Passed, m.Details.TotalTests))
		names := make([]string, 0, len(m.Details.Categories))
		for name := range m.Details.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", name, m.Details.Categories[name]))
		}
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render(util.WrapToWidth(strings.Join(parts, " • "), width))
}

// Run starts the browser and blocks until the user quits.
func Run(outcome loader.Outcome) error {
	if !outcome.Usable() {
		return fmt.Errorf("no results to browse: %w", outcome.Err())
	}
	p := tea.NewProgram(newModel(outcome), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
