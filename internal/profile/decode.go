package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalid is returned when a body does not match the page schema.
var ErrInvalid = errors.New("invalid profile page")

const schemaURL = "https://zcrowd.schemas.local/profile-page.schema.json"

//go:embed schema.json
var schemaJSON []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load page schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile page schema: %w", err)
	}
	return s, nil
})

// Decode validates body against the page schema and unmarshals it.
// Decoding is all-or-nothing: any missing field or type mismatch rejects
// the whole page.
func Decode(body []byte) (Page, error) {
	schema, err := compiled()
	if err != nil {
		return Page{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if dec.More() {
		return Page{}, fmt.Errorf("%w: trailing data after page", ErrInvalid)
	}

	if err := schema.Validate(doc); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return page, nil
}
