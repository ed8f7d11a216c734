// Package cli implements zcrowd's command-line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/zarlcorp/zcrowd/internal/config"
	"github.com/zarlcorp/zcrowd/internal/email"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/roster"
	"golang.org/x/term"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage")

// ErrInvalidEmail is returned by validate for a malformed address.
var ErrInvalidEmail = errors.New("invalid email")

// Env is what every subcommand runs against.
type Env struct {
	Config  config.Config
	DataDir string
	Out     io.Writer
	Err     io.Writer

	// Password supplies the master password. Nil prompts on the terminal.
	Password func(firstRun bool) (string, error)
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// CmdFetch fetches one page through the list controller and prints it.
func CmdFetch(ctx context.Context, env Env, f roster.Fetcher, args []string) error {
	list := roster.NewList(f, env.Config.Results)
	if err := list.Refresh(ctx); err != nil {
		return err
	}

	profiles := list.Profiles()
	if hasFlag(args, "--json") {
		return printJSON(env.Out, profiles)
	}

	for _, p := range profiles {
		key, ok := p.ID.Key()
		if !ok {
			key = "-"
		}
		fmt.Fprintf(env.Out, "  %-24s %-36s %-16s %s\n", p.FullName(), p.Email, key, p.Place())
	}
	return nil
}

// CmdValidate reports whether args[0] is a well-formed email address.
func CmdValidate(env Env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: zcrowd validate <email>", ErrUsage)
	}
	if !email.Valid(args[0]) {
		fmt.Fprintln(env.Out, "invalid")
		return ErrInvalidEmail
	}
	fmt.Fprintln(env.Out, "valid")
	return nil
}

// CmdOverride reads or writes a saved override.
func CmdOverride(ctx context.Context, env Env, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: zcrowd override get <id> | set <id> <email> <password>", ErrUsage)
	}

	switch args[0] {
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("%w: zcrowd override get <id>", ErrUsage)
		}
		return withStore(ctx, env, func(s *override.Store) error {
			return overrideGet(ctx, env.Out, s, args[1])
		})
	case "set":
		if len(args) != 4 {
			return fmt.Errorf("%w: zcrowd override set <id> <email> <password>", ErrUsage)
		}
		// reject a bad address before asking for the master password
		if !email.Valid(args[2]) {
			return fmt.Errorf("save %q: %w", args[2], roster.ErrValidationFailed)
		}
		return withStore(ctx, env, func(s *override.Store) error {
			d := roster.NewDetail(profile.Profile{ID: identity(args[1])}, s)
			if err := d.Save(ctx, args[2], args[3]); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "saved")
			return nil
		})
	}

	return fmt.Errorf("%w: unknown override command %q", ErrUsage, args[0])
}

func overrideGet(ctx context.Context, w io.Writer, s *override.Store, id string) error {
	rec, err := s.Load(ctx, identity(id))
	if err != nil {
		return err
	}
	if rec.Email == nil && rec.Password == nil {
		fmt.Fprintln(w, "no override")
		return nil
	}
	fmt.Fprintf(w, "  email:    %s\n", orDash(rec.Email))
	fmt.Fprintf(w, "  password: %s\n", orDash(rec.Password))
	return nil
}

// withStore opens the configured override backend for the duration of fn.
func withStore(ctx context.Context, env Env, fn func(*override.Store) error) error {
	var pass string
	if override.NeedsPassword(env.Config.Store) {
		firstRun := override.IsFirstRun(env.Config.Store, env.DataDir)
		var err error
		pass, err = env.password(firstRun)
		if err != nil {
			return err
		}
	}

	kv, closer, err := override.Open(ctx, env.Config.Store, env.DataDir, pass)
	if err != nil {
		return err
	}
	defer closer.Close()

	return fn(override.NewStore(kv))
}

func (e Env) password(firstRun bool) (string, error) {
	if e.Password != nil {
		return e.Password(firstRun)
	}
	if firstRun {
		return ReadNewPassword(e.Err)
	}
	return ReadPassword("master password: ", e.Err)
}

func identity(v string) profile.Identity {
	return profile.Identity{Value: &v}
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// Stdio returns an Env writing to the process's standard streams.
func Stdio(cfg config.Config, dataDir string) Env {
	return Env{Config: cfg, DataDir: dataDir, Out: os.Stdout, Err: os.Stderr}
}
