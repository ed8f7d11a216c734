// Package profiletest produces realistic randomuser.me fixtures for tests.
// Generation is seeded so a failing test can be replayed.
package profiletest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/zcrowd/internal/profile"
)

// password character classes
const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"
	saltChars  = lowerChars + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + digitChars

	saltLen = 8
)

// epoch anchors generated dates so fixtures do not depend on the clock.
var epoch = time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)

// Generator produces profiles from a seeded PCG source.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator for the given seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Profile produces one complete profile.
func (g *Generator) Profile() profile.Profile {
	first, last := g.pick(firstNames), g.pick(lastNames)
	nat := nationalities[g.rng.IntN(len(nationalities))]
	tz := timezones[g.rng.IntN(len(timezones))]
	login := g.login()

	idName := nat.code + "N"
	idValue := g.identityValue()

	return profile.Profile{
		Gender: g.pick([]string{"female", "male"}),
		Name: profile.Name{
			Title: g.pick(titles),
			First: first,
			Last:  last,
		},
		Location: profile.Location{
			Street: profile.Street{
				Number: 1 + g.rng.IntN(9999),
				Name:   g.pick(streetNames) + " Street",
			},
			City:    g.pick(cities),
			State:   g.pick(cities),
			Country: nat.country,
			Coordinates: profile.Coordinates{
				Latitude:  g.decimal(90),
				Longitude: g.decimal(180),
			},
			Timezone: profile.Timezone{Offset: tz.offset, Description: tz.description},
		},
		Email:      strings.ToLower(first+"."+last) + "@" + emailDomain,
		Login:      login,
		DOB:        g.date(18, 80),
		Registered: g.date(1, 20),
		Phone:      g.phone(),
		Cell:       g.phone(),
		ID:         profile.Identity{Name: &idName, Value: &idValue},
		Picture:    g.picture(),
		Nat:        nat.code,
	}
}

// Profiles produces n profiles.
func (g *Generator) Profiles(n int) []profile.Profile {
	out := make([]profile.Profile, n)
	for i := range out {
		out[i] = g.Profile()
	}
	return out
}

// Page wraps n profiles in an API envelope.
func (g *Generator) Page(n int) profile.Page {
	return profile.Page{
		Results: g.Profiles(n),
		Info: profile.Info{
			Seed:    strconv.FormatUint(g.rng.Uint64(), 16),
			Results: n,
			Page:    1,
			Version: "1.4",
		},
	}
}

// PageJSON encodes a page the way the API does.
func PageJSON(p profile.Page) []byte {
	b, err := json.Marshal(p)
	if err != nil {
		panic("profiletest: marshal page: " + err.Error())
	}
	return b
}

func (g *Generator) login() profile.Login {
	username := g.pick(adjectives) + g.pick(nouns) + strconv.Itoa(100+g.rng.IntN(900))
	password := g.pick(nouns) + strconv.Itoa(g.rng.IntN(100))
	salt := g.chars(saltChars, saltLen)
	salted := []byte(password + salt)

	md5sum := md5.Sum(salted)
	sha1sum := sha1.Sum(salted)
	sha256sum := sha256.Sum256(salted)

	return profile.Login{
		UUID:     g.uuid(),
		Username: username,
		Password: password,
		Salt:     salt,
		MD5:      hex.EncodeToString(md5sum[:]),
		SHA1:     hex.EncodeToString(sha1sum[:]),
		SHA256:   hex.EncodeToString(sha256sum[:]),
	}
}

// uuid builds a version 4 UUID from the seeded source.
func (g *Generator) uuid() uuid.UUID {
	var u uuid.UUID
	for i := range u {
		u[i] = byte(g.rng.UintN(256))
	}
	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}

// identityValue looks like a national id: "NNN-NN-NNNN".
func (g *Generator) identityValue() string {
	return fmt.Sprintf("%03d-%02d-%04d", g.rng.IntN(1000), g.rng.IntN(100), g.rng.IntN(10000))
}

func (g *Generator) phone() string {
	return fmt.Sprintf("(%03d) %03d-%04d", 100+g.rng.IntN(900), 100+g.rng.IntN(900), g.rng.IntN(10000))
}

// date produces a DateInfo whose age lies in [minAge, maxAge].
func (g *Generator) date(minAge, maxAge int) profile.DateInfo {
	age := minAge + g.rng.IntN(maxAge-minAge+1)
	t := epoch.AddDate(-age, 0, -g.rng.IntN(365))
	return profile.DateInfo{
		Date: t.Format("2006-01-02T15:04:05.000Z"),
		Age:  age,
	}
}

func (g *Generator) decimal(limit int) string {
	whole := g.rng.IntN(2*limit) - limit
	return fmt.Sprintf("%d.%04d", whole, g.rng.IntN(10000))
}

func (g *Generator) picture() profile.Picture {
	dir := g.pick([]string{"men", "women"})
	n := g.rng.IntN(100)
	base := "https://randomuser.me/api/portraits/"
	return profile.Picture{
		Large:     fmt.Sprintf("%s%s/%d.jpg", base, dir, n),
		Medium:    fmt.Sprintf("%smed/%s/%d.jpg", base, dir, n),
		Thumbnail: fmt.Sprintf("%sthumb/%s/%d.jpg", base, dir, n),
	}
}

func (g *Generator) pick(s []string) string {
	return s[g.rng.IntN(len(s))]
}

func (g *Generator) chars(set string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = set[g.rng.IntN(len(set))]
	}
	return string(buf)
}
