package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/zcrowd/internal/override"
)

func TestPasswordViewShowsPrompt(t *testing.T) {
	view := newPasswordModel(false).View()

	if !strings.Contains(view, "master password") {
		t.Error("view should show master password prompt")
	}
	if strings.Contains(view, "create") {
		t.Error("non-first-run view should not contain 'create'")
	}
	if !strings.Contains(view, "zcrowd") {
		t.Error("view should show tool name")
	}
}

func TestPasswordFirstRunConfirm(t *testing.T) {
	m := newPasswordModel(true)
	if !strings.Contains(m.View(), "create master password") {
		t.Fatal("first run should ask to create a password")
	}

	m.input.SetValue("secret")
	m, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("first entry should not submit")
	}
	if !strings.Contains(m.View(), "confirm password") {
		t.Fatal("view should ask for confirmation")
	}

	m.input.SetValue("secret")
	_, cmd = m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("matching confirmation should submit")
	}
	msg, ok := cmd().(passwordSubmitMsg)
	if !ok || msg.password != "secret" {
		t.Fatalf("got %#v, want passwordSubmitMsg{secret}", msg)
	}
}

func TestPasswordFirstRunMismatch(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret1")
	m, _ = m.Update(specialKey(tea.KeyEnter))
	m.input.SetValue("secret2")
	m, _ = m.Update(specialKey(tea.KeyEnter))

	if !strings.Contains(m.View(), "passwords do not match") {
		t.Error("should show mismatch error")
	}
	if m.confirming {
		t.Error("should reset confirming state")
	}
}

func TestPasswordEmptyIgnored(t *testing.T) {
	_, cmd := newPasswordModel(false).Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty password should not submit")
	}
}

func TestPasswordQKeyReachesInput(t *testing.T) {
	m, cmd := newPasswordModel(false).Update(keyMsg('q'))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should not quit the password view")
		}
	}
	if m.input.Value() != "q" {
		t.Fatalf("input: got %q, want q", m.input.Value())
	}
}

func TestPasswordCtrlCQuits(t *testing.T) {
	_, cmd := newPasswordModel(false).Update(specialKey(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should produce QuitMsg")
	}
}

func TestWrongPasswordShowsError(t *testing.T) {
	opts := testOptions(nil)
	opts.NeedsPassword = true
	opts.OpenStore = func(_ context.Context, pw string) (override.KV, io.Closer, error) {
		if pw != "right" {
			return nil, nil, override.ErrWrongPassword
		}
		return override.NewMemory(), io.NopCloser(nil), nil
	}

	m := New(context.Background(), opts)
	if m.active != viewPassword {
		t.Fatal("encrypted store should start at the password view")
	}

	m.password.input.SetValue("wrong")
	m, cmd := update(t, m, specialKey(tea.KeyEnter))
	m, cmd = update(t, m, cmd())
	m, _ = update(t, m, cmd())

	if m.active != viewPassword {
		t.Fatal("wrong password should stay on the password view")
	}
	if !strings.Contains(m.View(), "wrong password") {
		t.Errorf("view should show the error:\n%s", m.View())
	}

	m.password.input.SetValue("right")
	m, cmd = update(t, m, specialKey(tea.KeyEnter))
	m, cmd = update(t, m, cmd())
	m, _ = update(t, m, cmd())

	if m.active != viewList || !m.listView.loading {
		t.Fatal("right password should open the list and start fetching")
	}
	if m.store == nil {
		t.Fatal("store should be set")
	}
}
