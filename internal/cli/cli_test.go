package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zarlcorp/zcrowd/internal/config"
	"github.com/zarlcorp/zcrowd/internal/fetch"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/profile/profiletest"
	"github.com/zarlcorp/zcrowd/internal/roster"
)

func testEnv(t *testing.T, backend string) (Env, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Results = 3
	cfg.Store.Backend = backend

	var out bytes.Buffer
	return Env{
		Config:  cfg,
		DataDir: t.TempDir(),
		Out:     &out,
		Err:     &bytes.Buffer{},
		Password: func(bool) (string, error) {
			return "testpass", nil
		},
	}, &out
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want bool
	}{
		{"present", []string{"--json"}, "--json", true},
		{"absent", []string{"-v"}, "--json", false},
		{"empty", nil, "--json", false},
		{"case insensitive", []string{"--JSON"}, "--json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("hasFlag(%v, %s) = %v, want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestCmdValidate(t *testing.T) {
	tests := []struct {
		in      string
		wantOut string
		wantErr error
	}{
		{"a@b.co", "valid\n", nil},
		{"a@b", "invalid\n", ErrInvalidEmail},
		{"a@@b.com", "invalid\n", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			env, out := testEnv(t, config.BackendMemory)
			err := CmdValidate(env, []string{tt.in})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if out.String() != tt.wantOut {
				t.Errorf("out: got %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestCmdValidateUsage(t *testing.T) {
	env, _ := testEnv(t, config.BackendMemory)
	if err := CmdValidate(env, nil); !errors.Is(err, ErrUsage) {
		t.Fatalf("got %v, want ErrUsage", err)
	}
}

func pageServer(t *testing.T) (*fetch.Client, profile.Page) {
	t.Helper()
	page := profiletest.New(21).Page(3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(profiletest.PageJSON(page))
	}))
	t.Cleanup(srv.Close)
	return fetch.NewClient(fetch.Config{BaseURL: srv.URL}), page
}

func TestCmdFetchTable(t *testing.T) {
	c, page := pageServer(t)
	env, out := testEnv(t, config.BackendMemory)

	if err := CmdFetch(context.Background(), env, c, nil); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want 3\n%s", len(lines), out.String())
	}
	for i, p := range page.Results {
		if !strings.Contains(lines[i], p.FullName()) || !strings.Contains(lines[i], p.Email) {
			t.Errorf("line %d = %q, want name and email of %s", i, lines[i], p.FullName())
		}
	}
}

func TestCmdFetchJSON(t *testing.T) {
	c, page := pageServer(t)
	env, out := testEnv(t, config.BackendMemory)

	if err := CmdFetch(context.Background(), env, c, []string{"--json"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var got []profile.Profile
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(got) != 3 || got[2].Login.UUID != page.Results[2].Login.UUID {
		t.Errorf("unexpected profiles: %+v", got)
	}
}

func TestCmdFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	env, _ := testEnv(t, config.BackendMemory)
	err := CmdFetch(context.Background(), env, fetch.NewClient(fetch.Config{BaseURL: srv.URL}), nil)
	if !errors.Is(err, fetch.ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestCmdOverrideSetGet(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendVault} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			env, out := testEnv(t, backend)

			if err := CmdOverride(ctx, env, []string{"get", "X1"}); err != nil {
				t.Fatalf("get: %v", err)
			}
			if out.String() != "no override\n" {
				t.Errorf("get before set: %q", out.String())
			}

			out.Reset()
			if err := CmdOverride(ctx, env, []string{"set", "X1", "new@test.com", "pw"}); err != nil {
				t.Fatalf("set: %v", err)
			}

			out.Reset()
			if err := CmdOverride(ctx, env, []string{"get", "X1"}); err != nil {
				t.Fatalf("get: %v", err)
			}
			if !strings.Contains(out.String(), "new@test.com") || !strings.Contains(out.String(), "pw") {
				t.Errorf("get after set: %q", out.String())
			}
		})
	}
}

func TestCmdOverrideSetInvalidEmail(t *testing.T) {
	env, _ := testEnv(t, config.BackendSQLite)
	asked := false
	env.Password = func(bool) (string, error) {
		asked = true
		return "", nil
	}

	err := CmdOverride(context.Background(), env, []string{"set", "X1", "a@b", "pw"})
	if !errors.Is(err, roster.ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
	if asked {
		t.Error("password should not be requested for an invalid address")
	}
}

func TestCmdOverrideEmptyIdentity(t *testing.T) {
	env, _ := testEnv(t, config.BackendSQLite)
	err := CmdOverride(context.Background(), env, []string{"get", ""})
	if !errors.Is(err, override.ErrMissingIdentity) {
		t.Fatalf("got %v, want ErrMissingIdentity", err)
	}
}

func TestCmdOverrideFirstRunFlag(t *testing.T) {
	env, _ := testEnv(t, config.BackendVault)
	var runs []bool
	env.Password = func(firstRun bool) (string, error) {
		runs = append(runs, firstRun)
		return "testpass", nil
	}

	ctx := context.Background()
	if err := CmdOverride(ctx, env, []string{"get", "X1"}); err != nil {
		t.Fatal(err)
	}
	if err := CmdOverride(ctx, env, []string{"get", "X1"}); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || !runs[0] || runs[1] {
		t.Errorf("first-run flags: got %v, want [true false]", runs)
	}
}

func TestCmdOverrideUsage(t *testing.T) {
	env, _ := testEnv(t, config.BackendMemory)
	for _, args := range [][]string{nil, {"get"}, {"set", "X1", "a@b.co"}, {"drop", "X1"}} {
		if err := CmdOverride(context.Background(), env, args); !errors.Is(err, ErrUsage) {
			t.Errorf("args %v: got %v, want ErrUsage", args, err)
		}
	}
}
