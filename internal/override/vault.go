package override

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
)

const (
	saltFile    = "salt"
	verifyFile  = "verify"
	recordsDir  = "overrides"
	verifyToken = "zcrowd-override-vault-ok"
)

// ErrWrongPassword is returned when a vault is opened with the wrong password.
var ErrWrongPassword = errors.New("wrong password")

// Vault stores each override value as its own AES-256-GCM encrypted file.
type Vault struct {
	fs  zfilesystem.ReadWriteFileFS
	key []byte
}

// OpenVault opens or initializes a vault. On first use it writes a salt and
// a verification token; afterwards the token checks the password.
func OpenVault(fsys zfilesystem.ReadWriteFileFS, password string) (*Vault, error) {
	salt, err := readOrCreateSalt(fsys)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	key, _, err := zcrypto.DeriveKey([]byte(password), salt)
	if err != nil {
		return nil, fmt.Errorf("open vault: derive key: %w", err)
	}

	if err := verifyOrCreateToken(fsys, key); err != nil {
		zcrypto.Erase(key)
		return nil, fmt.Errorf("open vault: %w", err)
	}

	if err := fsys.MkdirAll(recordsDir, 0o700); err != nil {
		zcrypto.Erase(key)
		return nil, fmt.Errorf("open vault: create records dir: %w", err)
	}

	return &Vault{fs: fsys, key: key}, nil
}

func (v *Vault) Get(_ context.Context, key string) (string, bool, error) {
	ct, err := v.fs.ReadFile(recordPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("vault get: read: %w", err)
	}

	plain, err := zcrypto.Decrypt(v.key, ct)
	if err != nil {
		return "", false, fmt.Errorf("vault get: decrypt: %w", err)
	}
	return string(plain), true, nil
}

func (v *Vault) Set(_ context.Context, key, value string) error {
	ct, err := zcrypto.Encrypt(v.key, []byte(value))
	if err != nil {
		return fmt.Errorf("vault set: encrypt: %w", err)
	}
	if err := v.fs.WriteFile(recordPath(key), ct, 0o600); err != nil {
		return fmt.Errorf("vault set: write: %w", err)
	}
	return nil
}

func (v *Vault) Delete(_ context.Context, key string) error {
	err := v.fs.Remove(recordPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("vault delete: %w", err)
	}
	return nil
}

// Close erases the encryption key from memory.
func (v *Vault) Close() error {
	zcrypto.Erase(v.key)
	v.key = nil
	return nil
}

func readOrCreateSalt(fsys zfilesystem.ReadWriteFileFS) ([]byte, error) {
	salt, err := fsys.ReadFile(saltFile)
	if err == nil {
		return salt, nil
	}

	salt, err = zcrypto.RandBytes(zcrypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if err := fsys.WriteFile(saltFile, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write salt: %w", err)
	}
	return salt, nil
}

func verifyOrCreateToken(fsys zfilesystem.ReadWriteFileFS, key []byte) error {
	ct, err := fsys.ReadFile(verifyFile)
	if err != nil {
		ct, err = zcrypto.Encrypt(key, []byte(verifyToken))
		if err != nil {
			return fmt.Errorf("encrypt verify token: %w", err)
		}
		if err := fsys.WriteFile(verifyFile, ct, 0o600); err != nil {
			return fmt.Errorf("write verify token: %w", err)
		}
		return nil
	}

	plain, err := zcrypto.Decrypt(key, ct)
	if err != nil || string(plain) != verifyToken {
		return ErrWrongPassword
	}
	return nil
}

func recordPath(key string) string {
	return recordsDir + "/" + recordID(key) + ".enc"
}
