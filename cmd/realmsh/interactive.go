package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	realmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	flagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var flagNames = []string{"copy", "externalCopy", "reference", "promise"}

type modelState int

const (
	stateEditScript modelState = iota
	stateSelectFlags
	stateShowResult
)

type interactiveModel struct {
	err     error
	sh      *shell
	script  textinput.Model
	flags   [4]bool
	flagIdx int
	from    string
	result  string
	state   modelState
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = `({greeting: "hello"})`
	ti.Prompt = "script: "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{
		script: ti,
		from:   "left",
		state:  stateEditScript,
	}
}

type loadedMsg struct {
	err error
	sh  *shell
}

type transferDoneMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return func() tea.Msg {
		sh, err := newShell()
		return loadedMsg{sh: sh, err: err}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.sh != nil {
				m.sh.close()
			}
			return m, tea.Quit

		case "q":
			if m.state != stateEditScript {
				if m.sh != nil {
					m.sh.close()
				}
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFlags && m.flagIdx > 0 {
				m.flagIdx--
			}

		case "down", "j":
			if m.state == stateSelectFlags && m.flagIdx < len(flagNames)-1 {
				m.flagIdx++
			}

		case " ":
			if m.state == stateSelectFlags {
				m.flags[m.flagIdx] = !m.flags[m.flagIdx]
				return m, nil
			}

		case "s":
			if m.state == stateSelectFlags {
				if m.from == "left" {
					m.from = "right"
				} else {
					m.from = "left"
				}
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateEditScript:
				if strings.TrimSpace(m.script.Value()) != "" {
					m.script.Blur()
					m.state = stateSelectFlags
				}

			case stateSelectFlags:
				return m, m.runTransfer

			case stateShowResult:
				m.state = stateEditScript
				m.script.Focus()
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateSelectFlags:
				m.state = stateEditScript
				m.script.Focus()
			case stateShowResult:
				m.state = stateEditScript
				m.script.Focus()
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		m.sh = msg.sh
		m.err = msg.err

	case transferDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateEditScript {
		var cmd tea.Cmd
		m.script, cmd = m.script.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) runTransfer() tea.Msg {
	if m.sh == nil {
		return transferDoneMsg{err: fmt.Errorf("realms not ready")}
	}
	var flags []string
	for i, on := range m.flags {
		if on {
			flags = append(flags, flagNames[i])
		}
	}
	out, err := m.sh.transfer(m.from, m.script.Value(), flags, 2*time.Second)
	return transferDoneMsg{result: out, err: err}
}

func (m *interactiveModel) direction() string {
	if m.from == "right" {
		return realmStyle.Render("right") + " -> " + realmStyle.Render("left")
	}
	return realmStyle.Render("left") + " -> " + realmStyle.Render("right")
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.sh == nil {
		return "Starting realms..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Realm Shell"))
	b.WriteString(" ")
	b.WriteString(m.direction())
	b.WriteString("\n\n")

	switch m.state {
	case stateEditScript:
		b.WriteString("Script to evaluate in the source realm:\n\n")
		b.WriteString(m.script.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter choose flags • ctrl+c quit"))

	case stateSelectFlags:
		b.WriteString("Transfer flags:\n\n")
		for i, name := range flagNames {
			mark := "[ ]"
			if m.flags[i] {
				mark = "[x]"
			}
			line := mark + " " + flagStyle.Render(name)
			if i == m.flagIdx {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • space toggle • s swap direction • enter transfer • esc back"))

	case stateShowResult:
		b.WriteString("Materialized value:\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter new script • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
