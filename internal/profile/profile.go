// Package profile defines the randomuser.me record shapes and decodes
// API responses into them.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// Page is one fetched batch of profiles plus API metadata.
// Profile order is display order.
type Page struct {
	Results []Profile `json:"results"`
	Info    Info      `json:"info"`
}

// Info describes the draw that produced a page.
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}

// Profile is one random user.
type Profile struct {
	Gender     string   `json:"gender"`
	Name       Name     `json:"name"`
	Location   Location `json:"location"`
	Email      string   `json:"email"`
	Login      Login    `json:"login"`
	DOB        DateInfo `json:"dob"`
	Registered DateInfo `json:"registered"`
	Phone      string   `json:"phone"`
	Cell       string   `json:"cell"`
	ID         Identity `json:"id"`
	Picture    Picture  `json:"picture"`
	Nat        string   `json:"nat"`
}

type Name struct {
	Title string `json:"title"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type Location struct {
	Street      Street      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    Timezone    `json:"timezone"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Coordinates are decimal strings, exactly as the API sends them.
type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Timezone struct {
	Offset      string `json:"offset"`
	Description string `json:"description"`
}

// Login holds the generated account credentials. The digests are lowercase
// hex of fixed length (md5 32, sha1 40, sha256 64).
type Login struct {
	UUID     uuid.UUID `json:"uuid"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Salt     string    `json:"salt"`
	MD5      string    `json:"md5"`
	SHA1     string    `json:"sha1"`
	SHA256   string    `json:"sha256"`
}

// DateInfo is used for both date of birth and registration.
type DateInfo struct {
	Date string `json:"date"`
	Age  int    `json:"age"`
}

// Time parses Date as RFC 3339.
func (d DateInfo) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, d.Date)
}

// Identity is a national identifier. Value is the natural key of a
// profile but the API leaves it null for some nationalities.
type Identity struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// Key returns the identity value when it is present and non-empty.
func (id Identity) Key() (string, bool) {
	if id.Value == nil || *id.Value == "" {
		return "", false
	}
	return *id.Value, true
}

type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// FullName returns "first last".
func (p Profile) FullName() string {
	return p.Name.First + " " + p.Name.Last
}

// Place returns "city, country".
func (p Profile) Place() string {
	return p.Location.City + ", " + p.Location.Country
}
