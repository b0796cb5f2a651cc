package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/godot-bridge/symbols"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#478CBF")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#478CBF"))

	signatureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

type modelState int

const (
	stateBrowse modelState = iota
	stateDetail
)

type browserModel struct {
	filter   textinput.Model
	entries  []symbols.Entry
	selected int
	offset   int
	state    modelState
}

func newBrowserModel() *browserModel {
	ti := textinput.New()
	ti.Placeholder = "filter by name or group"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	m := &browserModel{filter: ti}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.entries = m.entries[:0]
	for _, e := range symbols.All() {
		if q == "" || strings.Contains(e.Name, q) || e.Group == q {
			m.entries = append(m.entries, e)
		}
	}
	m.selected = 0
	m.offset = 0
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}
			return m, nil

		case "down":
			if m.state == stateBrowse && m.selected < len(m.entries)-1 {
				m.selected++
				if m.selected >= m.offset+pageSize {
					m.offset = m.selected - pageSize + 1
				}
			}
			return m, nil

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.entries) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateBrowse
			}
			return m, nil
		}
	}

	if m.state != stateBrowse {
		return m, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GDExtension entry points"))
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", len(m.entries), symbols.Count))

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.entries) == 0 {
			b.WriteString("No entry point matches.")
			if hints := symbols.Suggest(strings.TrimSpace(m.filter.Value()), 3); len(hints) > 0 {
				b.WriteString(" ")
				b.WriteString(hintStyle.Render("Did you mean " + strings.Join(hints, ", ") + "?"))
			}
			b.WriteString("\n")
		}
		end := min(m.offset+pageSize, len(m.entries))
		for i := m.offset; i < end; i++ {
			e := m.entries[i]
			line := fmt.Sprintf("%-44s %s", e.Name, groupStyle.Render(e.Group))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter details • esc quit"))

	case stateDetail:
		e := m.entries[m.selected]
		b.WriteString(nameStyle.Render(e.Name))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("ID:        %d\n", e.ID))
		b.WriteString("Group:     " + groupStyle.Render(e.Group) + "\n")
		b.WriteString("Signature: " + signatureStyle.Render(e.Signature) + "\n")
		if near := symbols.Suggest(e.Name, 3); len(near) > 0 {
			b.WriteString("Similar:   " + hintStyle.Render(strings.Join(near, ", ")) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newBrowserModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
