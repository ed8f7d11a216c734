package override

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zcrowd/internal/config"
)

// NeedsPassword reports whether the configured backend is encrypted and must
// be unlocked with a master password.
func NeedsPassword(cfg config.Store) bool {
	return cfg.Backend == config.BackendZstore || cfg.Backend == config.BackendVault
}

// IsFirstRun reports whether an encrypted backend has not been initialized
// yet under dataDir.
func IsFirstRun(cfg config.Store, dataDir string) bool {
	dir := dataDir
	if cfg.Backend == config.BackendVault {
		dir = filepath.Join(dataDir, "vault")
	}
	_, err := os.Stat(filepath.Join(dir, saltFile))
	return err != nil
}

// Open opens the KV selected by cfg. password is ignored by backends that do
// not encrypt.
func Open(ctx context.Context, cfg config.Store, dataDir, password string) (KV, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendZstore, "":
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		z, closeFn, err := OpenZstore(zfilesystem.NewOSFileSystem(dataDir), password)
		if err != nil {
			return nil, nil, err
		}
		return z, closerFunc(closeFn), nil

	case config.BackendVault:
		dir := filepath.Join(dataDir, "vault")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create vault dir: %w", err)
		}
		v, err := OpenVault(zfilesystem.NewOSFileSystem(dir), password)
		if err != nil {
			return nil, nil, err
		}
		return v, v, nil

	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			if err := os.MkdirAll(dataDir, 0o700); err != nil {
				return nil, nil, fmt.Errorf("create data dir: %w", err)
			}
			path = filepath.Join(dataDir, "overrides.db")
		}
		s, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case config.BackendRedis:
		r, err := OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil

	case config.BackendMemory:
		return NewMemory(), nopCloser, nil
	}

	return nil, nil, fmt.Errorf("open override store: unknown backend %q", cfg.Backend)
}
