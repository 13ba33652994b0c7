package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trackgraph/pkg/diagram"
)

// SegmentListModel is the bubbletea model behind "inspect --interactive".
// It pages through the segment stack of a laid-out diagram.
type SegmentListModel struct {
	Title    string
	Segments []diagram.SegmentInfo
	Scale    float64
	Cursor   int
	Offset   int
	Height   int
}

// NewSegmentListModel creates a model for the segments of d.
func NewSegmentListModel(d *diagram.Diagram) SegmentListModel {
	return SegmentListModel{
		Title:    d.Timetable().Name,
		Segments: d.Segments(),
		Scale:    d.Scale(),
		Height:   15,
	}
}

func (m SegmentListModel) Init() tea.Cmd {
	return nil
}

func (m SegmentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Segments))
		case "end", "G":
			m.move(len(m.Segments))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window so that the cursor stays visible.
func (m *SegmentListModel) move(delta int) {
	if len(m.Segments) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Segments)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m SegmentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  scale %.3f", m.Scale)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Segments))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, segmentRow(m.Segments[i]))
	}
	b.WriteString(renderSegmentRows(rows, func(row int) bool { return m.Offset+row == m.Cursor }))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Segments))))

	return b.String()
}
