// Package tui implements the root Bubble Tea model for zcrowd.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcrowd/internal/imageload"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/roster"
)

type viewID int

const (
	viewPassword viewID = iota
	viewList
	viewDetail
)

// navigateMsg switches the active view.
type navigateMsg struct {
	view viewID
}

// storeOpenedMsg carries an unlocked override store.
type storeOpenedMsg struct {
	store  *override.Store
	closer io.Closer
	err    error
}

// ImageLoader downloads picture bytes.
type ImageLoader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// StoreOpener opens the override store with the master password. Backends
// without encryption ignore the password.
type StoreOpener func(ctx context.Context, password string) (override.KV, io.Closer, error)

// Options configures the root model.
type Options struct {
	Version       string
	Fetcher       roster.Fetcher
	Images        ImageLoader
	ResultCount   int
	OpenStore     StoreOpener
	NeedsPassword bool
	FirstRun      bool
}

// screen is one visit to a view. Results tagged with a token other than the
// live screen's are dropped.
type screen struct {
	token  uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Model is the root TUI model.
type Model struct {
	opts   Options
	ctx    context.Context
	tokens *uint64

	store       *override.Store
	storeCloser io.Closer
	list        *roster.List
	storeErr    error

	active     viewID
	password   passwordModel
	listView   listModel
	detailView detailModel

	listScreen   screen
	detailScreen screen

	width  int
	height int
}

// New creates the root TUI model. ctx bounds every request the UI makes.
func New(ctx context.Context, opts Options) Model {
	l := roster.NewList(opts.Fetcher, opts.ResultCount)
	m := Model{
		opts:     opts,
		ctx:      ctx,
		tokens:   new(uint64),
		list:     l,
		active:   viewPassword,
		password: newPasswordModel(opts.FirstRun),
		listView: newListModel(l),
	}
	if !opts.NeedsPassword {
		m.active = viewList
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.NeedsPassword {
		return m.password.Init()
	}
	return m.openStore("")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listView.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m, m.openStore(msg.password)

	case storeOpenedMsg:
		return m.handleStoreOpened(msg)

	case navigateMsg:
		return m.navigate(msg.view)

	case refreshRequestMsg:
		return m.startRefresh()

	case viewProfileMsg:
		return m.openDetail(msg.profile)

	case profilesMsg:
		if msg.token != m.listScreen.token {
			slog.Debug("drop stale profiles", "token", msg.token)
			return m, nil
		}
		if msg.err != nil {
			slog.Error("fetch profiles", "err", msg.err)
		}
		m.listView, _ = m.listView.Update(msg)
		return m, m.loadAvatars()

	case avatarMsg:
		if msg.token != m.listScreen.token {
			return m, nil
		}
		m.listView, _ = m.listView.Update(msg)
		return m, nil

	case detailLoadedMsg:
		if m.active != viewDetail || msg.token != m.detailScreen.token {
			return m, nil
		}
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case detailAvatarMsg:
		if m.active != viewDetail || msg.token != m.detailScreen.token {
			return m, nil
		}
		m.detailView, _ = m.detailView.Update(msg)
		return m, nil

	case savedMsg:
		if m.active != viewDetail || msg.token != m.detailScreen.token {
			return m, nil
		}
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewList:
		m.listView, cmd = m.listView.Update(msg)
	case viewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	if m.active == viewPassword {
		return m.password.View()
	}

	var content string
	switch m.active {
	case viewList:
		content = m.listView.View()
	case viewDetail:
		content = m.detailView.View()
	}

	if m.storeErr != nil {
		content += "  " + zstyle.StatusErr.Render("override store: "+m.storeErr.Error()) + "\n"
	}

	header := zstyle.RenderHeader(appName, viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

func viewTitle(id viewID) string {
	switch id {
	case viewList:
		return "Profiles"
	case viewDetail:
		return "Profile"
	}
	return ""
}

func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "r", Desc: "refresh"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+r", Desc: "reveal"},
			{Key: "enter", Desc: "save"},
			{Key: "ctrl+y", Desc: "copy email"},
			{Key: "esc", Desc: "back"},
		}
	}
	return nil
}

func (m Model) openStore(password string) tea.Cmd {
	open, ctx := m.opts.OpenStore, m.ctx
	return func() tea.Msg {
		if open == nil {
			return storeOpenedMsg{store: override.NewStore(override.NewMemory())}
		}
		kv, closer, err := open(ctx, password)
		if err != nil {
			return storeOpenedMsg{err: err}
		}
		return storeOpenedMsg{store: override.NewStore(kv), closer: closer}
	}
}

func (m Model) handleStoreOpened(msg storeOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.active == viewPassword {
			m.password, _ = m.password.Update(passwordErrMsg{err: msg.err})
			return m, nil
		}
		// the list still works; saving is reported as failing
		slog.Error("open override store", "err", msg.err)
		m.storeErr = msg.err
		m.store = override.NewStore(failingKV{err: msg.err})
		m.active = viewList
		return m.startRefresh()
	}

	m.store = msg.store
	m.storeCloser = msg.closer
	m.active = viewList
	return m.startRefresh()
}

// newScreen starts a fresh visit derived from the root context.
func (m Model) newScreen() screen {
	*m.tokens++
	ctx, cancel := context.WithCancel(m.ctx)
	return screen{token: *m.tokens, ctx: ctx, cancel: cancel}
}

func (s screen) close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	if m.listView.loading {
		return m, nil
	}

	m.listScreen.close()
	m.listScreen = m.newScreen()

	var spin tea.Cmd
	m.listView, spin = m.listView.startLoading()

	l, sc := m.list, m.listScreen
	fetch := func() tea.Msg {
		return profilesMsg{token: sc.token, err: l.Refresh(sc.ctx)}
	}
	return m, tea.Batch(spin, fetch)
}

// loadAvatars requests a thumbnail for every card on the current page.
func (m Model) loadAvatars() tea.Cmd {
	if m.opts.Images == nil {
		return nil
	}

	sc := m.listScreen
	cmds := make([]tea.Cmd, 0, len(m.listView.profiles))
	for i, p := range m.listView.profiles {
		cmds = append(cmds, m.avatarCmd(sc.ctx, p.Picture.Medium, cardAvatarCols, cardAvatarRows, func(art string) tea.Msg {
			return avatarMsg{token: sc.token, index: i, art: art}
		}))
	}
	return tea.Batch(cmds...)
}

// avatarCmd loads and renders one picture. Failures keep the placeholder.
func (m Model) avatarCmd(ctx context.Context, url string, cols, rows int, wrap func(string) tea.Msg) tea.Cmd {
	images := m.opts.Images
	return func() tea.Msg {
		b, err := images.Load(ctx, url)
		if err != nil {
			slog.Debug("load avatar", "url", url, "err", err)
			return nil
		}
		img, err := imageload.Decode(b)
		if err != nil {
			slog.Debug("decode avatar", "url", url, "err", err)
			return nil
		}
		return wrap(renderAvatar(img, cols, rows))
	}
}

func (m Model) openDetail(p profile.Profile) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	m.detailScreen.close()
	m.detailScreen = m.newScreen()

	sc := m.detailScreen
	m.detailView = newDetailModel(sc.ctx, sc.token, roster.NewDetail(p, m.store))
	m.active = viewDetail

	cmds := []tea.Cmd{m.detailView.Init()}
	if m.opts.Images != nil {
		cmds = append(cmds, m.avatarCmd(sc.ctx, p.Picture.Large, detailAvatarCols, detailAvatarRows, func(art string) tea.Msg {
			return detailAvatarMsg{token: sc.token, art: art}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	if view == viewList && m.active == viewDetail {
		m.detailScreen.close()
		m.detailScreen = screen{}
	}
	m.active = view
	return m, nil
}

// Close cancels in-flight work and releases the override store. Call after
// the program exits.
func (m Model) Close() error {
	m.listScreen.close()
	m.detailScreen.close()
	if m.storeCloser != nil {
		if err := m.storeCloser.Close(); err != nil {
			return fmt.Errorf("close override store: %w", err)
		}
	}
	return nil
}

// failingKV stands in for a store that could not be opened.
type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error { return f.err }
func (f failingKV) Delete(context.Context, string) error { return f.err }
