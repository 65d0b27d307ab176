package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	genruntime "github.com/wippyai/gen-runtime"
	"github.com/wippyai/gen-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	programStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	yieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectProgram modelState = iota
	stateStepping
)

type stepEntry struct {
	op     string
	result genruntime.Result
	err    error
}

type interactiveModel struct {
	rt       *runtime.Runtime
	programs []string
	selected int

	inst    *runtime.Instance
	history []stepEntry
	input   textinput.Model

	state modelState
}

func newInteractiveModel(rt *runtime.Runtime) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "resume value (empty for none)"
	ti.CharLimit = 128

	return &interactiveModel{
		rt:       rt,
		programs: rt.Programs(),
		input:    ti,
		state:    stateSelectProgram,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.dropInstance()
		return m, tea.Quit
	}

	switch m.state {
	case stateSelectProgram:
		return m.updateSelect(keyMsg)
	case stateStepping:
		return m.updateStepping(keyMsg)
	}
	return m, nil
}

func (m *interactiveModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.programs)-1 {
			m.selected++
		}
	case "enter":
		if len(m.programs) == 0 {
			return m, nil
		}
		inst, err := m.rt.Spawn(m.programs[m.selected])
		if err != nil {
			m.history = []stepEntry{{op: "spawn", err: err}}
			return m, nil
		}
		m.inst = inst
		m.history = nil
		m.input.SetValue("")
		m.input.Focus()
		m.state = stateStepping
		return m, textinput.Blink
	}
	return m, nil
}

func (m *interactiveModel) updateStepping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dropInstance()
		m.state = stateSelectProgram
		return m, nil
	case "enter":
		res, err := m.inst.Resume(parseValue(m.input.Value()))
		m.history = append(m.history, stepEntry{op: "resume", result: res, err: err})
		m.input.SetValue("")
		return m, nil
	case "ctrl+t":
		message := m.input.Value()
		if message == "" {
			message = "injected failure"
		}
		res, err := m.inst.Throw(errors.New(message))
		m.history = append(m.history, stepEntry{op: "throw", result: res, err: err})
		m.input.SetValue("")
		return m, nil
	case "ctrl+d":
		res, err := m.inst.Close()
		m.history = append(m.history, stepEntry{op: "close", result: res, err: err})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) dropInstance() {
	if m.inst != nil {
		m.inst.Close() //nolint:errcheck // leaving the stepper
		m.inst = nil
	}
}

// parseValue interprets the input box as an int, bool, or string. Empty
// input means no value.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gen-runtime stepper"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectProgram:
		b.WriteString("Select a program:\n\n")
		for i, name := range m.programs {
			line := "  " + name
			if i == m.selected {
				line = selectedStyle.Render("> " + name)
			} else {
				line = programStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		for _, e := range m.history {
			if e.err != nil {
				b.WriteString("\n" + errorStyle.Render(e.err.Error()) + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("up/down: move  enter: spawn  q: quit"))

	case stateStepping:
		fmt.Fprintf(&b, "%s  %s\n\n",
			programStyle.Render(m.inst.Program()),
			stateStyle.Render(m.inst.State().String()))

		for i, e := range m.history {
			if e.err != nil {
				fmt.Fprintf(&b, "  %2d %-6s %s\n", i+1, e.op, errorStyle.Render(e.err.Error()))
				continue
			}
			fmt.Fprintf(&b, "  %2d %-6s %s\n", i+1, e.op,
				yieldStyle.Render(fmt.Sprintf("value=%v done=%v", e.result.Value, e.result.Done)))
		}

		b.WriteString("\n" + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: resume  ctrl+t: throw  ctrl+d: close  esc: back  ctrl+c: quit"))
	}

	return b.String() + "\n"
}

func runInteractive(rt *runtime.Runtime) error {
	p := tea.NewProgram(newInteractiveModel(rt))
	_, err := p.Run()
	return err
}
