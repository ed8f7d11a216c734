// Package override persists locally edited email and password values for
// profiles, keyed by the profile's national identity value.
package override

import (
	"context"
	"errors"
)

// ErrMissingIdentity is returned when a profile has no identity value to key
// its override by.
var ErrMissingIdentity = errors.New("profile has no identity")

// KV is a string key-value store. Each Get and Set is individually atomic.
type KV interface {
	// Get returns the value for key. ok is false when nothing was stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })
