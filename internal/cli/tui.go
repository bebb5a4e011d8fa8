package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sceneforge/depsgraph/pkg/deg"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listGroupStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// nodeListModel is the bubbletea model for browsing a graph's outer
// nodes. The selected node's identities, components, and relations are
// shown in a detail pane below the list.
type nodeListModel struct {
	graph  *deg.Graph
	nodes  []deg.OuterNode
	cursor int
	height int
	offset int
}

// newNodeListModel creates a browser over the graph's top-level nodes.
func newNodeListModel(g *deg.Graph) nodeListModel {
	return nodeListModel{
		graph:  g,
		nodes:  g.Nodes(),
		height: 15,
	}
}

func (m nodeListModel) Init() tea.Cmd {
	return nil
}

func (m nodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 12
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m nodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Graph Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := m.offset; i < end; i++ {
		n := m.nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		tag := " "
		if n.Type() == deg.NodeTypeOuterGroup {
			tag = listGroupStyle.Render("G")
		}

		line := fmt.Sprintf("%s%s %-30s %s", cursor, tag, n.Name(),
			listDimStyle.Render(fmt.Sprintf("%d identities", len(n.IDs()))))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.nodes))))

	return b.String()
}

// detailView renders the selected node's identities, components, and
// relation counts.
func (m nodeListModel) detailView() string {
	n := m.nodes[m.cursor]
	var b strings.Builder

	b.WriteString(listDimStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")

	ids := make([]string, len(n.IDs()))
	for i, id := range n.IDs() {
		ids[i] = id.Name
	}
	b.WriteString("  " + listDimStyle.Render("identities: ") + StyleValue.Render(strings.Join(ids, ", ")))
	b.WriteString("\n")

	if sub := n.SubData(); len(sub) > 0 {
		comps := make([]string, len(sub))
		for i, child := range sub {
			comps[i] = child.Name()
		}
		b.WriteString("  " + listDimStyle.Render("components: ") + StyleValue.Render(strings.Join(comps, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("relations:  %d in, %d out",
		len(n.InLinks()), len(n.OutLinks()))))
	b.WriteString("\n")

	return b.String()
}
