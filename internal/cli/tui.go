package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/highweigh/pkg/roadmap"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ProjectListModel - Interactive project selection
// =============================================================================

// ProjectListModel is the bubbletea model for picking a project of a roadmap.
type ProjectListModel struct {
	Doc      *roadmap.Document
	Cursor   int
	Offset   int
	Height   int
	Selected *roadmap.Project
}

// NewProjectListModel creates a picker over the projects of doc.
func NewProjectListModel(doc *roadmap.Document) ProjectListModel {
	return ProjectListModel{Doc: doc, Height: 15}
}

func (m ProjectListModel) Init() tea.Cmd {
	return nil
}

func (m ProjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Doc.Projects)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Doc.Projects) == 0 {
				return m, tea.Quit
			}
			p := m.Doc.Projects[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ProjectListModel) View() string {
	var b strings.Builder

	title := m.Doc.Title
	if title == "" {
		title = "Select Project"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show epics  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Doc.Projects))
	b.WriteString(projectTable(m.Doc.Projects[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Doc.Projects))))

	return b.String()
}

// =============================================================================
// Tables
// =============================================================================

// projectTable renders one row per project. The row at index current is
// highlighted; pass -1 for none.
func projectTable(projects []roadmap.Project, current int) string {
	rows := make([][]string, 0, len(projects))
	for i, p := range projects {
		cursor := "  "
		if i == current {
			cursor = "▸ "
		}
		bars, milestones := len(p.Bars), len(p.Milestones)
		for _, e := range p.Epics {
			bars += len(e.Bars)
			milestones += len(e.Milestones)
		}
		rows = append(rows, []string{
			cursor,
			p.Name,
			renderRAG(p.RAG),
			strconv.Itoa(len(p.Epics)),
			strconv.Itoa(bars),
			strconv.Itoa(milestones),
			formatSpan(projectSpan(p)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Project", "RAG", "Epics", "Bars", "Milestones", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == current && col != 2:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case col >= 3 && col <= 5:
				return lipgloss.NewStyle().Foreground(colorGray).Align(lipgloss.Right)
			case col == 6:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// epicTable renders the epics of a project with their bars and milestones.
func epicTable(p roadmap.Project) string {
	rows := make([][]string, 0, len(p.Epics))
	for _, e := range p.Epics {
		rows = append(rows, []string{
			e.Name,
			e.Description,
			strconv.Itoa(len(e.Bars)),
			strconv.Itoa(len(e.Milestones)),
			formatSpan(rowSpan(e.Row)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Epic", "Description", "Bars", "Milestones", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1 || col == 4:
				return StyleDim
			case col == 2 || col == 3:
				return lipgloss.NewStyle().Foreground(colorGray).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// =============================================================================
// Helpers
// =============================================================================

// span is the date range covered by a row's bars and milestones.
type span struct {
	first, last roadmap.CalendarDate
	ok          bool
}

func (s *span) add(d roadmap.CalendarDate) {
	if !s.ok {
		s.first, s.last, s.ok = d, d, true
		return
	}
	if d.Before(s.first) {
		s.first = d
	}
	if s.last.Before(d) {
		s.last = d
	}
}

func (s *span) addRow(r roadmap.Row) {
	for _, b := range r.Bars {
		s.add(b.Start)
		s.add(b.Stop)
	}
	for _, m := range r.Milestones {
		s.add(m.Date)
	}
}

func rowSpan(r roadmap.Row) span {
	var s span
	s.addRow(r)
	return s
}

// projectSpan covers the project row and all of its epics.
func projectSpan(p roadmap.Project) span {
	s := rowSpan(p.Row)
	for _, e := range p.Epics {
		s.addRow(e.Row)
	}
	return s
}

func formatSpan(s span) string {
	if !s.ok {
		return "-"
	}
	return s.first.String() + " " + iconArrow + " " + s.last.String()
}
