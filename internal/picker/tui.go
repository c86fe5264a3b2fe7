package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BuiltinPicker is the fallback used when no external picker command is
// installed: a minimal filter-as-you-type list rendered with Bubble Tea.
type BuiltinPicker struct{}

func NewBuiltin() *BuiltinPicker { return &BuiltinPicker{} }

var (
	promptStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

const maxVisible = 12

type pickModel struct {
	prompt   string
	options  []string
	filtered []string
	input    textinput.Model
	sel      int
	choice   string
	chosen   bool
}

func newPickModel(prompt string, options []string) pickModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 128
	ti.Focus()
	m := pickModel{prompt: prompt, options: options, input: ti}
	m.applyFilter()
	return m
}

// applyFilter keeps options whose lowercased text contains the query.
func (m *pickModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" {
		m.filtered = append([]string(nil), m.options...)
	} else {
		m.filtered = nil
		for _, o := range m.options {
			if strings.Contains(strings.ToLower(o), q) {
				m.filtered = append(m.filtered, o)
			}
		}
	}
	if m.sel >= len(m.filtered) {
		m.sel = len(m.filtered) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.sel]
				m.chosen = true
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.sel > 0 {
				m.sel--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.sel < len(m.filtered)-1 {
				m.sel++
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m pickModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.sel >= maxVisible {
		start = m.sel - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := start; i < end; i++ {
		line := " " + m.filtered[i]
		if i == m.sel {
			line = selectedStyle.Render(">" + m.filtered[i])
		}
		b.WriteString(line + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render(" no matches") + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("\n%d/%d  enter: select  esc: cancel", len(m.filtered), len(m.options))))
	return b.String()
}

// Pick runs the fallback picker in the current terminal.
func (b *BuiltinPicker) Pick(prompt string, options []string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	res, err := tea.NewProgram(newPickModel(prompt, options)).Run()
	if err != nil {
		return "", false
	}
	final, ok := res.(pickModel)
	if !ok || !final.chosen {
		return "", false
	}
	return final.choice, true
}
