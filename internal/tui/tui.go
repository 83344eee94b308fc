// internal/tui/tui.go
// Package tui provides a terminal explorer for the pages: pick a page, move its
// sliders with the arrow keys and watch the charts as sparklines.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/util"
)

// viewState represents the current screen of the explorer.
type viewState int

const (
	// viewPageSelector lists the interactive pages.
	viewPageSelector viewState = iota
	// viewExplorer shows one page's controls and charts.
	viewExplorer
)

// model is the Bubble Tea model of the explorer.
type model struct {
	catalog       *pages.Catalog
	state         viewState
	pageList      list.Model
	page          *pages.Page
	session       *engine.Session
	controls      []control.Control
	focus         int
	charts        map[string]engine.Update
	err           error
	width, height int
}

// item is a selectable page in the list.
type item struct {
	name  string
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the page path.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// initialModel lists every interactive page of the catalog.
func initialModel(catalog *pages.Catalog) *model {
	var items []list.Item
	for _, p := range catalog.Pages() {
		if !p.Interactive() {
			continue
		}
		items = append(items, item{name: p.Name, title: p.Header.Title, desc: p.Path})
	}
	pageList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	pageList.Title = "Select a Page"

	return &model{
		catalog:  catalog,
		state:    viewPageSelector,
		pageList: pageList,
		charts:   make(map[string]engine.Update),
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd { return nil }

// open mounts a page in a fresh session and draws every chart.
func (m *model) open(name string) {
	p, ok := m.catalog.Page(name)
	if !ok {
		m.err = fmt.Errorf("unknown page %q", name)
		return
	}
	m.page = p
	m.session = engine.NewSession("tui", p)
	m.charts = make(map[string]engine.Update)
	m.focus = 0
	m.record(m.session.Refresh())
	m.state = viewExplorer
}

func (m *model) record(updates []engine.Update) {
	for _, u := range updates {
		if u.Figure != nil {
			m.charts[u.Target] = u
		}
	}
	m.controls = m.session.Controls()
}

// nudge moves the focused slider by steps.
func (m *model) nudge(steps int) {
	if len(m.controls) == 0 {
		return
	}
	c := m.controls[m.focus]
	updates, err := m.session.Apply(engine.Change{Values: map[string]float64{
		c.ID: c.Value + float64(steps)*c.Step,
	}})
	if err != nil {
		m.err = err
		return
	}
	m.record(updates)
}

// Update handles key presses and window resizes.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		if m.state == viewExplorer {
			switch msg.String() {
			case "esc", "tab":
				m.state = viewPageSelector
				m.session = nil
			case "up", "k":
				if m.focus > 0 {
					m.focus--
				}
			case "down", "j":
				if m.focus < len(m.controls)-1 {
					m.focus++
				}
			case "left", "h":
				m.nudge(-1)
			case "right", "l":
				m.nudge(1)
			case "pgdown":
				m.nudge(-5)
			case "pgup":
				m.nudge(5)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.pageList.SetSize(msg.Width-2, msg.Height-4)
		return m, nil
	}

	if m.state == viewPageSelector {
		m.pageList, cmd = m.pageList.Update(msg)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.pageList.SelectedItem().(item); ok {
				m.open(selected.name)
			}
		}
	}
	return m, cmd
}

// View renders the current screen.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewPageSelector:
		listView := m.pageList.View()
		if !strings.Contains(listView, m.pageList.Title) {
			listView = fmt.Sprintf("%s\n\n%s", m.pageList.Title, listView)
		}
		return lipgloss.NewStyle().Margin(1, 2).Render(listView)
	case viewExplorer:
		return m.explorerView()
	default:
		return "Unknown state"
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	chartStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// renderBadge returns a Lipgloss-styled badge.
func renderBadge(label string) string {
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	return badgeStyle.Render(label)
}

func (m *model) explorerView() string {
	var b strings.Builder
	width := max(m.width-6, 20)

	b.WriteString(headerStyle.Render(m.page.Header.Title))
	b.WriteString(renderBadge(m.page.Path))
	b.WriteString("\n\n")

	for i, c := range m.controls {
		label := c.Label
		if label == "" {
			label = c.ID
		}
		line := fmt.Sprintf("%-16s %s %g", util.StripTags(label, " "), slider(c, 30), c.Value)
		if i == m.focus {
			b.WriteString(focusStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, g := range m.page.GraphSlots() {
		u, ok := m.charts[g.ID]
		if !ok {
			continue
		}
		b.WriteString(chartStyle.Render(chartSummary(g, u, width)))
		b.WriteString("\n")
	}

	b.WriteString(captionStyle.Render("↑/↓ select  ←/→ adjust  pgup/pgdown ×5  esc pages  q quit"))
	return b.String()
}

// slider draws a control's position on a fixed-width track.
func slider(c control.Control, width int) string {
	pos := 0
	if c.Max > c.Min {
		pos = int((c.Value - c.Min) / (c.Max - c.Min) * float64(width-1))
	}
	pos = min(max(pos, 0), width-1)
	return "[" + strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-1-pos) + "]"
}

// Start runs the explorer until the user quits.
func Start(catalog *pages.Catalog) error {
	p := tea.NewProgram(initialModel(catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
