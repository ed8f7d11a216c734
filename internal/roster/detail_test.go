package roster

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zarlcorp/zcrowd/internal/override"
	"github.com/zarlcorp/zcrowd/internal/profile"
	"github.com/zarlcorp/zcrowd/internal/profile/profiletest"
)

func profileWithID(t *testing.T, value *string) profile.Profile {
	t.Helper()
	p := profiletest.New(9).Profile()
	p.ID.Value = value
	return p
}

func ptr(s string) *string { return &s }

func TestDetailLoadWithoutOverride(t *testing.T) {
	p := profileWithID(t, ptr("X1"))
	d := NewDetail(p, override.NewStore(override.NewMemory()))

	got, err := d.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Editable{Email: p.Email, Password: p.Login.Password}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDetailSaveThenFreshController(t *testing.T) {
	ctx := context.Background()
	s := override.NewStore(override.NewMemory())
	p := profileWithID(t, ptr("X1"))

	if err := NewDetail(p, s).Save(ctx, "new@test.com", "pw"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := NewDetail(p, s).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != (Editable{Email: "new@test.com", Password: "pw"}) {
		t.Errorf("got %+v", got)
	}
}

func TestDetailSaveInvalidEmailLeavesOverride(t *testing.T) {
	ctx := context.Background()
	s := override.NewStore(override.NewMemory())
	p := profileWithID(t, ptr("X1"))

	if err := NewDetail(p, s).Save(ctx, "old@test.com", "old"); err != nil {
		t.Fatal(err)
	}

	d := NewDetail(p, s)
	err := d.Save(ctx, "a@b", "new")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}

	rec, err := s.Load(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *rec.Email != "old@test.com" || *rec.Password != "old" {
		t.Errorf("override changed: %s / %s", *rec.Email, *rec.Password)
	}
}

func TestDetailPasswordNeverValidated(t *testing.T) {
	d := NewDetail(profileWithID(t, ptr("X2")), override.NewStore(override.NewMemory()))
	for _, pw := range []string{"", " ", "ü@@", "a\nb"} {
		if err := d.Save(context.Background(), "ok@test.com", pw); err != nil {
			t.Errorf("save password %q: %v", pw, err)
		}
	}
}

func TestDetailLoadReadsStoreOnce(t *testing.T) {
	ctx := context.Background()
	s := override.NewStore(override.NewMemory())
	p := profileWithID(t, ptr("X1"))

	d := NewDetail(p, s)
	first, err := d.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// a write from elsewhere must not clobber this screen's state
	if err := NewDetail(p, s).Save(ctx, "other@test.com", "other"); err != nil {
		t.Fatal(err)
	}

	second, err := d.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("got %+v, want unchanged %+v", second, first)
	}
}

func TestDetailSaveUpdatesState(t *testing.T) {
	ctx := context.Background()
	d := NewDetail(profileWithID(t, ptr("X3")), override.NewStore(override.NewMemory()))

	if _, err := d.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(ctx, "x@y.io", "z"); err != nil {
		t.Fatal(err)
	}

	got, _ := d.Load(ctx)
	if got != (Editable{Email: "x@y.io", Password: "z"}) {
		t.Errorf("got %+v", got)
	}
}

func TestDetailMissingIdentity(t *testing.T) {
	ctx := context.Background()
	m := override.NewMemory()
	p := profileWithID(t, nil)
	d := NewDetail(p, override.NewStore(m))

	got, err := d.Load(ctx)
	if !errors.Is(err, override.ErrMissingIdentity) {
		t.Fatalf("load: got %v, want ErrMissingIdentity", err)
	}
	if got.Email != p.Email || got.Password != p.Login.Password {
		t.Errorf("load should fall back to profile values, got %+v", got)
	}

	if _, err := d.Load(ctx); !errors.Is(err, override.ErrMissingIdentity) {
		t.Fatalf("second load: got %v, want ErrMissingIdentity", err)
	}

	if err := d.Save(ctx, "ok@test.com", "pw"); !errors.Is(err, override.ErrMissingIdentity) {
		t.Fatalf("save: got %v, want ErrMissingIdentity", err)
	}
	if m.Len() != 0 {
		t.Error("nothing may be written without an identity")
	}
}

// passwordFailKV fails every write of a password key.
type passwordFailKV struct {
	*override.Memory
}

var errDiskFull = errors.New("disk full")

func (k passwordFailKV) Set(ctx context.Context, key, value string) error {
	if strings.HasSuffix(key, "_savedPassword") {
		return errDiskFull
	}
	return k.Memory.Set(ctx, key, value)
}

func TestDetailFailedSaveKeepsPreviousOverride(t *testing.T) {
	ctx := context.Background()
	m := override.NewMemory()
	p := profileWithID(t, ptr("X1"))

	if err := NewDetail(p, override.NewStore(m)).Save(ctx, "old@test.com", "oldpw"); err != nil {
		t.Fatalf("first save: %v", err)
	}

	failing := override.NewStore(passwordFailKV{m})
	d := NewDetail(p, failing)
	if err := d.Save(ctx, "new@test.com", "pw"); !errors.Is(err, errDiskFull) {
		t.Fatalf("save: got %v, want errDiskFull", err)
	}

	got, err := NewDetail(p, override.NewStore(m)).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != (Editable{Email: "old@test.com", Password: "oldpw"}) {
		t.Errorf("failed save changed the override: got %+v", got)
	}
}

func TestDetailTogglePassword(t *testing.T) {
	a := NewDetail(profileWithID(t, ptr("A")), override.NewStore(override.NewMemory()))
	b := NewDetail(profileWithID(t, ptr("B")), override.NewStore(override.NewMemory()))

	if a.PasswordVisible() {
		t.Fatal("password should start hidden")
	}
	if !a.TogglePassword() || !a.PasswordVisible() {
		t.Fatal("toggle should reveal")
	}
	if b.PasswordVisible() {
		t.Fatal("visibility leaked between screens")
	}
	if a.TogglePassword() {
		t.Fatal("second toggle should hide")
	}
}
