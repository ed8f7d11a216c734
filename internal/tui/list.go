package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/roster"
)

const (
	cardAvatarCols = 6
	cardAvatarRows = 3
	cardHeight     = cardAvatarRows + 1
	// header, separator, footer and margins
	listChrome = 8
)

// listModel shows one card per fetched profile.
type listModel struct {
	list     *roster.List
	profiles []profile.Profile
	avatars  map[int]string
	cursor   int
	loading  bool
	err      error
	spinner  spinner.Model
	height   int
}

// refreshRequestMsg asks the root model to start a new fetch.
type refreshRequestMsg struct{}

// profilesMsg reports a finished fetch for list generation token.
type profilesMsg struct {
	token uint64
	err   error
}

// avatarMsg carries a rendered card thumbnail.
type avatarMsg struct {
	token uint64
	index int
	art   string
}

// viewProfileMsg opens the detail screen.
type viewProfileMsg struct {
	profile profile.Profile
}

func newListModel(l *roster.List) listModel {
	return listModel{
		list:    l,
		avatars: make(map[int]string),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// startLoading switches to the spinner and drops the current cards.
func (m listModel) startLoading() (listModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.profiles = nil
	m.avatars = make(map[int]string)
	m.cursor = 0
	return m, m.spinner.Tick
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profilesMsg:
		m.loading = false
		m.err = msg.err
		m.profiles = m.list.Profiles()
		m.avatars = make(map[int]string)
		m.cursor = 0
		return m, nil

	case avatarMsg:
		if msg.index >= 0 && msg.index < len(m.profiles) {
			m.avatars[msg.index] = msg.art
		}
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if msg.String() == "r" {
		if m.loading {
			return m, nil
		}
		return m, func() tea.Msg { return refreshRequestMsg{} }
	}

	if len(m.profiles) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, zstyle.KeyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, zstyle.KeyDown):
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
	case key.Matches(msg, zstyle.KeyEnter):
		p := m.profiles[m.cursor]
		return m, func() tea.Msg { return viewProfileMsg{profile: p} }
	}

	return m, nil
}

// window returns the range of cards that fit on screen around the cursor.
func (m listModel) window() (int, int) {
	n := len(m.profiles)
	if m.height <= 0 {
		return 0, n
	}
	fit := max(1, (m.height-listChrome)/cardHeight)
	if fit >= n {
		return 0, n
	}
	start := min(max(0, m.cursor-fit/2), n-fit)
	return start, start + fit
}

func (m listModel) View() string {
	s := "\n"

	if m.loading {
		return s + "  " + m.spinner.View() + " " + zstyle.MutedText.Render("fetching profiles...") + "\n\n"
	}

	if m.err != nil {
		s += "  " + zstyle.StatusErr.Render("fetch failed: "+m.err.Error()) + "\n"
		return s + "  " + zstyle.MutedText.Render("press r to retry") + "\n\n"
	}

	if len(m.profiles) == 0 {
		return s + "  " + zstyle.MutedText.Render("no profiles  r to fetch") + "\n\n"
	}

	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	start, end := m.window()

	for i := start; i < end; i++ {
		s += m.card(i, accentStyle) + "\n\n"
	}

	if start > 0 || end < len(m.profiles) {
		s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.profiles))) + "\n"
	}

	return s
}

func (m listModel) card(i int, accentStyle lipgloss.Style) string {
	p := m.profiles[i]

	art, ok := m.avatars[i]
	if !ok {
		art = placeholder(cardAvatarCols, cardAvatarRows)
	}

	name := truncate(p.FullName(), 30)
	if i == m.cursor {
		name = accentStyle.Render(name)
	}
	text := strings.Join([]string{
		name,
		zstyle.MutedText.Render(truncate(p.Place(), 40)),
	}, "\n")

	marker := "  "
	if i == m.cursor {
		marker = accentStyle.Render("▸") + " "
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, "  "+marker, art, "  ", text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
