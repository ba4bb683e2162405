package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
)

// List styles
var (
	listCursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listHighlightedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle      = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle         = lipgloss.NewStyle().Foreground(colorDim)

	detailsPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				MarginLeft(2)
)

// =============================================================================
// ExploreModel - Interactive selection
// =============================================================================

// ExploreModel is the bubbletea model behind `rpgmap explore`. It lists
// every node; enter toggles the selection on the node under the cursor and
// the list and details panel follow the resulting highlight state.
type ExploreModel struct {
	Graph     *graph.Graph
	Nodes     []graph.Node
	Visible   []int // indexes into Nodes matching Filter
	Cursor    int   // position in Visible
	Offset    int
	Height    int
	Filter    string
	Filtering bool

	Selection highlight.Selection
	State     highlight.State
}

// NewExploreModel creates an explorer with nothing selected.
func NewExploreModel(g *graph.Graph) ExploreModel {
	m := ExploreModel{
		Graph:  g,
		Nodes:  g.Nodes(),
		Height: 20,
		State:  highlight.Select(g, ""),
	}
	m.applyFilter()
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			if id, ok := m.current(); ok {
				m.State = m.Selection.Click(m.Graph, id)
			}
		case "esc":
			m.State = m.Selection.Clear(m.Graph)
		case "/":
			m.Filtering = true
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

func (m ExploreModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.Filtering = false
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter = ""
		m.applyFilter()
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// current returns the ID under the cursor.
func (m ExploreModel) current() (string, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return "", false
	}
	return m.Nodes[m.Visible[m.Cursor]].ID, true
}

func (m *ExploreModel) move(delta int) {
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor > len(m.Visible)-1 {
		m.Cursor = max(len(m.Visible)-1, 0)
	}
	m.clampOffset()
}

func (m *ExploreModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// applyFilter recomputes Visible with a case-insensitive substring match on
// the label and ID.
func (m *ExploreModel) applyFilter() {
	q := strings.ToLower(m.Filter)
	visible := make([]int, 0, len(m.Nodes))
	for i, n := range m.Nodes {
		if q == "" || strings.Contains(strings.ToLower(n.ID), q) || strings.Contains(strings.ToLower(n.Label), q) {
			visible = append(visible, i)
		}
	}
	m.Visible = visible
	m.Cursor = 0
	m.Offset = 0
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("RPG Systems"))
	b.WriteString("\n")
	if m.Filtering || m.Filter != "" {
		b.WriteString(StyleHighlight.Render("/" + m.Filter))
		if m.Filtering {
			b.WriteString(listDimStyle.Render("  ⏎ done  esc reset"))
		}
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc clear  / filter  q quit"))
	}
	b.WriteString("\n\n")

	list := m.renderList()
	panel := detailsPanelStyle.Render(strings.TrimRight(renderDetails(m.State.Details), "\n"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, panel))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Visible)), len(m.Visible))))

	return b.String()
}

func (m ExploreModel) renderList() string {
	classes := make(map[string]highlight.Class, len(m.State.Nodes))
	for _, n := range m.State.Nodes {
		classes[n.ID] = n.Class
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	lines := make([]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[m.Visible[i]]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + nodeLabel(n)

		switch {
		case i == m.Cursor:
			line = listCursorStyle.Render(line)
		case classes[n.ID] == highlight.Highlighted:
			line = listHighlightedStyle.Render(line)
		case classes[n.ID] == highlight.Dimmed:
			line = listDimStyle.Render(line)
		default:
			line = listNormalStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, listDimStyle.Render("  no matches"))
	}
	return strings.Join(lines, "\n")
}

// nodeLabel is the list entry for a node: the system name, or the tag value
// with its category.
func nodeLabel(n graph.Node) string {
	if n.IsSystem() {
		return n.Label
	}
	return n.Label + " " + listDimStyle.Render("("+n.Category.Title()+")")
}
