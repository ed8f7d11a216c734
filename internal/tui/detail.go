package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/roster"
)

const (
	detailAvatarCols = 24
	detailAvatarRows = 12
)

const (
	focusEmail = iota
	focusPassword
)

const (
	flashSaved      = "saved"
	flashInvalid    = "invalid email format"
	flashNoIdentity = "cannot save: profile has no identity"
)

// detailModel edits the saved email and password of one profile. Each visit
// gets its own model, token and context.
type detailModel struct {
	ctx     context.Context
	token   uint64
	detail  *roster.Detail
	profile profile.Profile

	avatar     string
	hasAvatar  bool
	email      textinput.Model
	password   textinput.Model
	focus      int
	loaded     bool
	noIdentity bool
	saving     bool
	flash      string
	flashErr   bool
}

// detailLoadedMsg carries the editable state read on screen entry.
type detailLoadedMsg struct {
	token    uint64
	editable roster.Editable
	err      error
}

// detailAvatarMsg carries the rendered large picture.
type detailAvatarMsg struct {
	token uint64
	art   string
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	token uint64
	err   error
}

type flashMsg struct{}

// clearFlashAfter returns a command that clears the flash after a delay.
func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func newDetailModel(ctx context.Context, token uint64, d *roster.Detail) detailModel {
	email := textinput.New()
	email.Prompt = ""
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	pw := textinput.New()
	pw.Prompt = ""
	pw.CharLimit = 128
	pw.Width = 40
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '*'

	return detailModel{
		ctx:      ctx,
		token:    token,
		detail:   d,
		profile:  d.Profile(),
		email:    email,
		password: pw,
	}
}

func (m detailModel) Init() tea.Cmd {
	d, token, ctx := m.detail, m.token, m.ctx
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ed, err := d.Load(ctx)
		return detailLoadedMsg{token: token, editable: ed, err: err}
	})
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case detailLoadedMsg:
		m.loaded = true
		m.email.SetValue(msg.editable.Email)
		m.password.SetValue(msg.editable.Password)
		switch {
		case errors.Is(msg.err, override.ErrMissingIdentity):
			m.noIdentity = true
		case msg.err != nil:
			m.flash = "load: " + msg.err.Error()
			m.flashErr = true
		}
		return m, nil

	case detailAvatarMsg:
		m.avatar = msg.art
		m.hasAvatar = true
		return m, nil

	case savedMsg:
		m.saving = false
		m.flashErr = msg.err != nil
		switch {
		case msg.err == nil:
			m.flash = flashSaved
		case errors.Is(msg.err, roster.ErrValidationFailed):
			m.flash = flashInvalid
		case errors.Is(msg.err, override.ErrMissingIdentity):
			m.flash = flashNoIdentity
		default:
			m.flash = "save: " + msg.err.Error()
		}
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyTab) {
		m.focus = (m.focus + 1) % 2
		if m.focus == focusEmail {
			m.password.Blur()
			return m, m.email.Focus()
		}
		m.email.Blur()
		return m, m.password.Focus()
	}

	switch msg.String() {
	case "ctrl+r":
		if m.detail.TogglePassword() {
			m.password.EchoMode = textinput.EchoNormal
		} else {
			m.password.EchoMode = textinput.EchoPassword
		}
		return m, nil

	case "ctrl+y":
		m.flashErr = false
		m.flash = "copied!"
		if err := copyToClipboard(m.email.Value()); err != nil {
			m.flash = "copy: " + err.Error()
			m.flashErr = true
		}
		return m, clearFlashAfter()

	case "enter":
		if m.saving || !m.loaded {
			return m, nil
		}
		m.saving = true
		d, token, ctx := m.detail, m.token, m.ctx
		email, pw := m.email.Value(), m.password.Value()
		return m, func() tea.Msg {
			return savedMsg{token: token, err: d.Save(ctx, email, pw)}
		}
	}

	return m.updateFocused(msg)
}

func (m detailModel) updateFocused(msg tea.Msg) (detailModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m detailModel) View() string {
	art := m.avatar
	if !m.hasAvatar {
		art = placeholder(detailAvatarCols, detailAvatarRows)
	}

	info := zstyle.Subtitle.Render(m.profile.FullName()) + "\n" +
		zstyle.MutedText.Render(m.profile.Place())
	if v, ok := m.profile.ID.Key(); ok {
		info += "\n" + zstyle.MutedText.Render(identityLabel(m.profile.ID)+v)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, "  ", art, "   ", info)

	s := "\n" + top + "\n\n"
	s += m.field("email", m.email, m.focus == focusEmail)
	s += m.field("password", m.password, m.focus == focusPassword)
	s += "\n"

	if m.noIdentity {
		s += "  " + zstyle.StatusWarn.Render("no identity: changes cannot be saved") + "\n"
	} else {
		s += "\n"
	}

	// reserve the flash line so the layout does not shift
	switch {
	case m.flash == "":
		s += "\n"
	case m.flashErr:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	default:
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	}

	return s
}

func (m detailModel) field(label string, in textinput.Model, focused bool) string {
	l := zstyle.MutedText.Render(padRight(label, 10))
	if focused {
		marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")
		return "  " + marker + " " + l + " " + in.View() + "\n"
	}
	return "    " + l + " " + in.View() + "\n"
}

func identityLabel(id profile.Identity) string {
	if id.Name == nil || *id.Name == "" {
		return ""
	}
	return *id.Name + " "
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
