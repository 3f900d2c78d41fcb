package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err      error
	client   *evds.Client
	apiKey   string
	result   string
	ops      []opInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type opInfo struct {
	name   string
	desc   string
	fields []fieldInfo
}

type fieldInfo struct {
	name string
	hint string
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

// Shared trailing fields every operation needs.
var commonFields = []fieldInfo{
	{"key", "API key"},
	{"format", "csv|json|xml"},
	{"ascii", "true|false"},
}

func operations() []opInfo {
	return []opInfo{
		{"data", "Fetch a time series", append([]fieldInfo{
			{"series", "e.g. TP.DK.USD.S"},
			{"date", "DD-MM-YYYY[,DD-MM-YYYY]"},
		}, commonFields...)},
		{"advanced", "Fetch a series with aggregation/formula/frequency", append([]fieldInfo{
			{"series", "e.g. TP.DK.USD.S"},
			{"date", "DD-MM-YYYY[,DD-MM-YYYY]"},
			{"agg", "avg|min|max|first|last|sum"},
			{"formula", "level|pct|diff|ypct|ydiff|yepct|yediff|mavg|msum"},
			{"freq", "daily|business|weekly|twicemonthly|monthly|quarterly|semiannual|annual"},
		}, commonFields...)},
		{"datagroup", "Fetch every series of a data group", append([]fieldInfo{
			{"group", "e.g. bie_yssk"},
			{"date", "DD-MM-YYYY[,DD-MM-YYYY]"},
		}, commonFields...)},
		{"categories", "List service categories", commonFields},
		{"datagroups", "Fetch data group metadata", append([]fieldInfo{
			{"mode", "0|1|2"},
			{"code", "group or category code"},
		}, commonFields...)},
		{"serielist", "List series under a code", append([]fieldInfo{
			{"code", "e.g. bie_yssk"},
		}, commonFields...)},
	}
}

func newInteractiveModel(client *evds.Client, apiKey string) *interactiveModel {
	return &interactiveModel{
		client: client,
		apiKey: apiKey,
		ops:    operations(),
		state:  stateSelectOp,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.call

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	op := m.ops[m.selected]
	m.inputs = make([]textinput.Model, len(op.fields))
	for i, f := range op.fields {
		ti := textinput.New()
		ti.Placeholder = f.hint
		ti.Prompt = f.name + ": "
		ti.Width = 60
		switch f.name {
		case "key":
			if m.apiKey != "" {
				ti.SetValue(m.apiKey)
			}
			ti.EchoMode = textinput.EchoPassword
		case "format":
			ti.SetValue("json")
		case "ascii":
			ti.SetValue("false")
		case "agg":
			ti.SetValue("avg")
		case "formula":
			ti.SetValue("level")
		case "freq":
			ti.SetValue("daily")
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) field(name string) string {
	op := m.ops[m.selected]
	for i, f := range op.fields {
		if f.name == name {
			return strings.TrimSpace(m.inputs[i].Value())
		}
	}
	return ""
}

func (m *interactiveModel) call() tea.Msg {
	op := m.ops[m.selected]

	mode := uint64(0)
	if v := m.field("mode"); v != "" {
		mode, _ = strconv.ParseUint(v, 10, 32)
	}
	ascii := m.field("ascii") == "true" || m.field("ascii") == "1"

	body, err := run(m.client, op.name,
		m.field("series"), m.field("date"), m.field("group"),
		uint32(mode), m.field("code"), m.field("key"),
		m.field("format"), m.field("agg"), m.field("formula"), m.field("freq"),
		ascii)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: body}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EVDS Bridge"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range m.ops {
			line := opStyle.Render(op.name) + "  " + hintStyle.Render(op.desc)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Operation %s\n\n", opStyle.Render(op.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", opStyle.Render(op.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("%s (code %d)",
				errors.MessageOf(m.err), errors.CodeOf(m.err))))
		} else {
			b.WriteString(resultStyle.Render(truncate(m.result, 4000)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n... (truncated)"
}

func runInteractive(client *evds.Client, apiKey string) error {
	p := tea.NewProgram(newInteractiveModel(client, apiKey), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
