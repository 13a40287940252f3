package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Picker styles
var (
	pickSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	pickDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickItem is one selectable entry: a name plus a dim annotation
// (version, constraint) shown next to it.
type pickItem struct {
	name   string
	detail string
}

// pickModel is the bubbletea model for a single-choice list.
type pickModel struct {
	title  string
	items  []pickItem
	cursor int
	chosen int // index of the selection, -1 while none
}

func newPickModel(title string, items []pickItem) pickModel {
	return pickModel{title: title, items: items, chosen: -1}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-28s %s", cursor, item.name, pickDimStyle.Render(item.detail))
		if i == m.cursor {
			b.WriteString(pickSelectedStyle.Render(line))
		} else {
			b.WriteString(pickNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))

	return b.String()
}

// pick runs an interactive single-choice list and returns the selected index.
// Returns -1 without error when the user aborts (q/esc/ctrl+c); aborting the
// picker is a normal exit, not a failure.
func pick(title string, items []pickItem) (int, error) {
	final, err := tea.NewProgram(newPickModel(title, items)).Run()
	if err != nil {
		return -1, fmt.Errorf("interactive selection: %w", err)
	}
	m, ok := final.(pickModel)
	if !ok {
		return -1, fmt.Errorf("interactive selection: unexpected model %T", final)
	}
	return m.chosen, nil
}
