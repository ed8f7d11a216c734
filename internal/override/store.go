package override

import (
	"context"
	"fmt"

	"github.com/zarlcorp/zcrowd/internal/profile"
)

const (
	emailSuffix    = "_savedEmail"
	passwordSuffix = "_savedPassword"
)

// Record holds the saved fields for one identity. A nil field was never saved.
type Record struct {
	Email    *string
	Password *string
}

// Store reads and writes override records on top of a KV.
type Store struct {
	kv KV
}

// NewStore wraps kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the saved record for id.
func (s *Store) Load(ctx context.Context, id profile.Identity) (Record, error) {
	emailKey, passwordKey, err := keys(id)
	if err != nil {
		return Record{}, fmt.Errorf("load override: %w", err)
	}

	var rec Record

	email, ok, err := s.kv.Get(ctx, emailKey)
	if err != nil {
		return Record{}, fmt.Errorf("load override: get email: %w", err)
	}
	if ok {
		rec.Email = &email
	}

	password, ok, err := s.kv.Get(ctx, passwordKey)
	if err != nil {
		return Record{}, fmt.Errorf("load override: get password: %w", err)
	}
	if ok {
		rec.Password = &password
	}

	return rec, nil
}

// Save writes both fields for id. Validation is the caller's job. If the
// password cannot be written the previous email is put back, so a failed
// save leaves the stored record as it was.
func (s *Store) Save(ctx context.Context, id profile.Identity, email, password string) error {
	emailKey, passwordKey, err := keys(id)
	if err != nil {
		return fmt.Errorf("save override: %w", err)
	}

	prevEmail, hadEmail, err := s.kv.Get(ctx, emailKey)
	if err != nil {
		return fmt.Errorf("save override: get email: %w", err)
	}

	if err := s.kv.Set(ctx, emailKey, email); err != nil {
		return fmt.Errorf("save override: set email: %w", err)
	}
	if err := s.kv.Set(ctx, passwordKey, password); err != nil {
		if rerr := s.restore(ctx, emailKey, prevEmail, hadEmail); rerr != nil {
			return fmt.Errorf("save override: set password: %w (restore email: %w)", err, rerr)
		}
		return fmt.Errorf("save override: set password: %w", err)
	}

	return nil
}

func (s *Store) restore(ctx context.Context, key, prev string, had bool) error {
	// the failed save's own context may be the reason Set failed
	ctx = context.WithoutCancel(ctx)
	if had {
		return s.kv.Set(ctx, key, prev)
	}
	return s.kv.Delete(ctx, key)
}

func keys(id profile.Identity) (string, string, error) {
	v, ok := id.Key()
	if !ok {
		return "", "", ErrMissingIdentity
	}
	return v + emailSuffix, v + passwordSuffix, nil
}
