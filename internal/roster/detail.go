package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zarlcorp/zcrowd/internal/email"
	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
)

// ErrValidationFailed is returned by Save when the email is malformed.
var ErrValidationFailed = errors.New("invalid email format")

// Editable is the email and password shown for editing.
type Editable struct {
	Email    string
	Password string
}

// Detail controls one visit to a profile's detail screen.
type Detail struct {
	profile profile.Profile
	store   *override.Store

	mu           sync.Mutex
	loaded       bool
	identityErr  error
	current      Editable
	showPassword bool
}

// NewDetail creates a detail controller for p backed by s.
func NewDetail(p profile.Profile, s *override.Store) *Detail {
	return &Detail{profile: p, store: s}
}

// Profile returns the profile this controller edits.
func (d *Detail) Profile() profile.Profile {
	return d.profile
}

// Load returns the editable state. The override store is read on the first
// successful call only; later calls return the in-memory state so edits in
// progress are not clobbered. A profile without an identity yields its own
// values and override.ErrMissingIdentity.
func (d *Detail) Load(ctx context.Context) (Editable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return d.current, d.identityErr
	}

	d.current = Editable{Email: d.profile.Email, Password: d.profile.Login.Password}

	rec, err := d.store.Load(ctx, d.profile.ID)
	if errors.Is(err, override.ErrMissingIdentity) {
		d.loaded = true
		d.identityErr = err
		return d.current, err
	}
	if err != nil {
		return d.current, fmt.Errorf("load editable state: %w", err)
	}

	if rec.Email != nil {
		d.current.Email = *rec.Email
	}
	if rec.Password != nil {
		d.current.Password = *rec.Password
	}
	d.loaded = true

	return d.current, nil
}

// Save validates the email and persists both fields. The password is stored
// as given.
func (d *Detail) Save(ctx context.Context, emailAddr, password string) error {
	if !email.Valid(emailAddr) {
		return fmt.Errorf("save %q: %w", emailAddr, ErrValidationFailed)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Save(ctx, d.profile.ID, emailAddr, password); err != nil {
		return err
	}

	d.current = Editable{Email: emailAddr, Password: password}
	d.loaded = true
	return nil
}

// TogglePassword flips password visibility and returns the new value.
func (d *Detail) TogglePassword() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.showPassword = !d.showPassword
	return d.showPassword
}

// PasswordVisible reports whether the password is shown in clear.
func (d *Detail) PasswordVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.showPassword
}
