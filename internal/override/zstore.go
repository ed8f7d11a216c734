package override

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const collectionName = "overrides"

type entry struct {
	Value string `json:"value"`
}

// Zstore keeps overrides in an encrypted zstore collection.
type Zstore struct {
	col *zstore.Collection[entry]
}

// OpenZstore opens the encrypted store on fsys with password. The returned
// closer wipes the store key.
func OpenZstore(fsys zfilesystem.ReadWriteFileFS, password string) (*Zstore, func() error, error) {
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return nil, nil, fmt.Errorf("open zstore: %w", err)
	}

	col, err := zstore.NewCollection[entry](s, collectionName)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("open zstore: collection: %w", err)
	}

	closeFn := func() error {
		s.Close()
		return nil
	}
	return &Zstore{col: col}, closeFn, nil
}

func (z *Zstore) Get(_ context.Context, key string) (string, bool, error) {
	e, err := z.col.Get(recordID(key))
	if errors.Is(err, zstore.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("zstore get: %w", err)
	}
	return e.Value, true, nil
}

func (z *Zstore) Set(_ context.Context, key, value string) error {
	if err := z.col.Put(recordID(key), entry{Value: value}); err != nil {
		return fmt.Errorf("zstore put: %w", err)
	}
	return nil
}

func (z *Zstore) Delete(_ context.Context, key string) error {
	err := z.col.Delete(recordID(key))
	if err != nil && !errors.Is(err, zstore.ErrNotFound) {
		return fmt.Errorf("zstore delete: %w", err)
	}
	return nil
}

// recordID makes a key safe to use as a file name.
func recordID(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}
