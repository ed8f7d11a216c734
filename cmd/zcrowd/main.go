package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zcrowd/internal/cli"
	"github.com/zarlcorp/zcrowd/internal/config"
	"github.com/zarlcorp/zcrowd/internal/fetch"
	"github.com/zarlcorp/zcrowd/internal/imageload"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zcrowd"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "zcrowd: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if i := slices.Index(args, "--ephemeral"); i >= 0 {
		args = slices.Delete(args, i, i+1)
		cfg.Store.Backend = config.BackendMemory
	}

	dataDir := config.DataDir()

	if len(args) > 0 {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
		code := runCLI(ctx, cfg, dataDir, args)
		_ = app.Close()
		os.Exit(code)
	}

	if err := runTUI(ctx, cfg, dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "zcrowd: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cfg config.Config, dataDir string, args []string) int {
	env := cli.Stdio(cfg, dataDir)

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("zcrowd %s\n", version)
	case "fetch":
		err = cli.CmdFetch(ctx, env, newFetcher(cfg), args[1:])
	case "validate":
		err = cli.CmdValidate(env, args[1:])
	case "override":
		err = cli.CmdOverride(ctx, env, args[1:])
	default:
		err = fmt.Errorf("%w: unknown command %q", cli.ErrUsage, args[0])
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrInvalidEmail):
		// already reported on stdout
		return 1
	default:
		fmt.Fprintf(os.Stderr, "zcrowd: %v\n", err)
		return 1
	}
}

func runTUI(ctx context.Context, cfg config.Config, dataDir string) error {
	logFile, err := openLog(dataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()})))

	store := cfg.Store
	m := tui.New(ctx, tui.Options{
		Version: version,
		Fetcher: newFetcher(cfg),
		Images: imageload.New(imageload.Config{
			Timeout: cfg.Images.Timeout,
			Rate:    cfg.Images.Rate,
			Burst:   cfg.Images.Burst,
		}),
		ResultCount: cfg.Results,
		OpenStore: func(ctx context.Context, password string) (override.KV, io.Closer, error) {
			return override.Open(ctx, store, dataDir, password)
		},
		NeedsPassword: override.NeedsPassword(store),
		FirstRun:      override.IsFirstRun(store, dataDir),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if fm, ok := finalModel.(tui.Model); ok {
		if cerr := fm.Close(); cerr != nil {
			slog.Error("close", "err", cerr)
		}
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func newFetcher(cfg config.Config) *fetch.Client {
	return fetch.NewClient(fetch.Config{BaseURL: cfg.Endpoint, Timeout: cfg.Timeout})
}

// openLog opens the TUI log file so output does not corrupt the screen.
func openLog(dataDir string) (*os.File, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "zcrowd.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
