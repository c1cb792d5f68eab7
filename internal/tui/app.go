// Package tui provides the interactive Bubble Tea snapshot browser for orstats.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/model"
)

// Flexoki Dark palette.
var (
	colorBg        = lipgloss.Color("#100F0F")
	colorSurface   = lipgloss.Color("#1C1B1A")
	colorHover     = lipgloss.Color("#282726")
	colorBorder    = lipgloss.Color("#403E3C")
	colorTextDim   = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#878580")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Bold(true).
			Padding(0, 1)
	summaryStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorBg).
			Background(colorAccent).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Padding(0, 1)
)

// App is the root Bubble Tea model. It browses the loaded snapshot
// history, one table of ranked models per snapshot date.
type App struct {
	history  []model.RevenueReport // ascending by date
	selected int                   // index into history
	tbl      table.Model

	width  int
	height int
}

const (
	minTerminalWidth = 80
	chromeHeight     = 6 // title + date tabs + summary + help
)

// NewApp creates a browser over the snapshot history. The latest
// snapshot is selected initially. History must be non-empty.
func NewApp(history []model.RevenueReport) App {
	a := App{
		history:  history,
		selected: len(history) - 1,
	}
	a.tbl = newModelTable()
	a.refreshRows()
	return a
}

func newModelTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Model", Width: 34},
		{Title: "Tokens", Width: 9},
		{Title: "Cached", Width: 9},
		{Title: "Prompt", Width: 7},
		{Title: "Compl", Width: 7},
		{Title: "Revenue", Width: 10},
		{Title: "WoW", Width: 8},
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		Foreground(colorTextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(colorText).
		Background(colorHover).
		Bold(false)
	st.Cell = st.Cell.Foreground(colorText)
	t.SetStyles(st)

	return t
}

func (a *App) refreshRows() {
	snap := a.history[a.selected]
	rows := make([]table.Row, 0, len(snap.Models))
	for _, m := range snap.Models {
		revenue := cli.FormatDollars(m.EstimatedRevenue)
		if m.IsFree {
			revenue = "Free"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", m.Rank),
			m.Name,
			cli.FormatTokens(m.TotalTokens),
			cli.FormatTokens(m.CachedTokens),
			fmt.Sprintf("%.0f%%", m.PromptRatio*100),
			fmt.Sprintf("%.0f%%", m.CompletionRatio*100),
			revenue,
			cli.FormatWoW(m.PercentChange),
		})
	}
	a.tbl.SetRows(rows)
	a.tbl.GotoTop()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		h := msg.Height - chromeHeight
		if h < 5 {
			h = 5
		}
		a.tbl.SetHeight(h)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		case "left", "h":
			if a.selected > 0 {
				a.selected--
				a.refreshRows()
			}
			return a, nil
		case "right", "l":
			if a.selected < len(a.history)-1 {
				a.selected++
				a.refreshRows()
			}
			return a, nil
		case "home":
			a.selected = 0
			a.refreshRows()
			return a, nil
		case "end":
			a.selected = len(a.history) - 1
			a.refreshRows()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.tbl, cmd = a.tbl.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("Terminal too narrow (%d cols, need %d)\nPress q to quit.",
			a.width, minTerminalWidth)
	}

	snap := a.history[a.selected]

	var b strings.Builder
	b.WriteString(titleStyle.Render("orstats · OpenRouter Revenue Snapshots"))
	b.WriteString("\n")
	b.WriteString(a.renderDateTabs())
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(fmt.Sprintf(
		"%s  ·  %s revenue  ·  %s tokens  ·  %d models (%d paid, %d free)",
		snap.Date,
		cli.FormatDollars(snap.TotalRevenue),
		cli.FormatTokens(snap.TotalTokens),
		snap.TotalModels, snap.PaidModels, snap.FreeModels)))
	b.WriteString("\n")
	b.WriteString(a.tbl.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ snapshot  ↑/↓ scroll  q quit"))
	return b.String()
}

// renderDateTabs shows a window of snapshot dates centered near the
// selection so long histories stay within the terminal width.
func (a App) renderDateTabs() string {
	const maxTabs = 6

	start := a.selected - maxTabs/2
	if start < 0 {
		start = 0
	}
	end := start + maxTabs
	if end > len(a.history) {
		end = len(a.history)
		start = end - maxTabs
		if start < 0 {
			start = 0
		}
	}

	var parts []string
	if start > 0 {
		parts = append(parts, tabStyle.Render("…"))
	}
	for i := start; i < end; i++ {
		if i == a.selected {
			parts = append(parts, tabActiveStyle.Render(a.history[i].Date))
		} else {
			parts = append(parts, tabStyle.Render(a.history[i].Date))
		}
	}
	if end < len(a.history) {
		parts = append(parts, tabStyle.Render("…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Run starts the browser and blocks until the user quits.
func Run(history []model.RevenueReport) error {
	if len(history) == 0 {
		return fmt.Errorf("no snapshots to browse")
	}
	p := tea.NewProgram(NewApp(history), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
