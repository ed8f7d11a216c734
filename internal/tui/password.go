package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// passwordModel unlocks the encrypted override store.
type passwordModel struct {
	input      textinput.Model
	firstRun   bool
	confirming bool
	firstPass  string
	opening    bool
	errMsg     string
}

// passwordSubmitMsg carries the entered master password.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg reports a failed unlock.
type passwordErrMsg struct {
	err error
}

func newPasswordModel(firstRun bool) passwordModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40

	return passwordModel{input: ti, firstRun: firstRun}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.opening {
			return m, nil
		}
		if key.Matches(msg, zstyle.KeyEnter) {
			return m.submit()
		}

	case passwordErrMsg:
		m.errMsg = msg.err.Error()
		m.input.SetValue("")
		m.confirming = false
		m.firstPass = ""
		m.opening = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) submit() (passwordModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}

	if m.firstRun && !m.confirming {
		m.firstPass = val
		m.confirming = true
		m.input.SetValue("")
		m.errMsg = ""
		return m, nil
	}

	if m.firstRun && val != m.firstPass {
		m.errMsg = "passwords do not match"
		m.confirming = false
		m.firstPass = ""
		m.input.SetValue("")
		return m, nil
	}

	m.errMsg = ""
	m.opening = true
	return m, func() tea.Msg { return passwordSubmitMsg{password: val} }
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)))
	toolName := indent.Render(zstyle.MutedText.Render(appName))

	prompt := "master password:"
	switch {
	case m.firstRun && m.confirming:
		prompt = "confirm password:"
	case m.firstRun:
		prompt = "create master password:"
	}

	s := fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n", logo, toolName, prompt, m.input.View())

	switch {
	case m.errMsg != "":
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	case m.opening:
		s += "\n  " + zstyle.MutedText.Render("unlocking...")
	}

	return s + "\n"
}
