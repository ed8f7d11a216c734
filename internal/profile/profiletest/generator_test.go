package profiletest

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
)

func TestProfile(t *testing.T) {
	p := New(1).Profile()

	tests := []struct {
		name  string
		check func() bool
	}{
		{"first name non-empty", func() bool { return p.Name.First != "" }},
		{"last name non-empty", func() bool { return p.Name.Last != "" }},
		{"email has @ sign", func() bool { return strings.Contains(p.Email, "@") }},
		{"uuid is version 4", func() bool { return p.Login.UUID.Version() == 4 }},
		{"md5 is 32 hex", func() bool { return regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(p.Login.MD5) }},
		{"sha1 is 40 hex", func() bool { return regexp.MustCompile(`^[0-9a-f]{40}$`).MatchString(p.Login.SHA1) }},
		{"sha256 is 64 hex", func() bool { return regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(p.Login.SHA256) }},
		{"identity value present", func() bool { _, ok := p.ID.Key(); return ok }},
		{"latitude is decimal", func() bool { return regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`).MatchString(p.Location.Coordinates.Latitude) }},
		{"picture is https", func() bool { return strings.HasPrefix(p.Picture.Large, "https://") }},
		{"age in range", func() bool { return p.DOB.Age >= 18 && p.DOB.Age <= 80 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check() {
				t.Errorf("check failed for profile: %+v", p)
			}
		})
	}
}

func TestDigestsMatchSaltedPassword(t *testing.T) {
	p := New(7).Profile()
	sum := md5.Sum([]byte(p.Login.Password + p.Login.Salt))
	if got := hex.EncodeToString(sum[:]); got != p.Login.MD5 {
		t.Errorf("md5 = %s, want %s", p.Login.MD5, got)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a := New(42).Profiles(5)
	b := New(42).Profiles(5)
	for i := range a {
		if a[i].Login.UUID != b[i].Login.UUID || a[i].Email != b[i].Email {
			t.Fatalf("profile %d differs between runs with the same seed", i)
		}
	}
}

func TestDateParses(t *testing.T) {
	p := New(3).Profile()
	if _, err := p.DOB.Time(); err != nil {
		t.Errorf("dob date %q: %v", p.DOB.Date, err)
	}
	if _, err := p.Registered.Time(); err != nil {
		t.Errorf("registered date %q: %v", p.Registered.Date, err)
	}
}

func TestWithout(t *testing.T) {
	body := PageJSON(New(1).Page(2))

	out, err := Without(body, "results.1.login.md5")
	if err != nil {
		t.Fatalf("without: %v", err)
	}
	if strings.Count(string(out), `"md5"`) != 1 {
		t.Errorf("expected exactly one md5 field left, got %s", out)
	}

	if _, err := Without(body, "results.9.email"); err == nil {
		t.Error("expected error for out of range index")
	}
	if _, err := Without(body, "results.0.nope"); err == nil {
		t.Error("expected error for missing field")
	}
}
