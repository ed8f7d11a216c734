package profiletest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RequiredFields lists every required field of a profile record as a
// dotted path relative to the record.
var RequiredFields = []string{
	"gender",
	"name", "name.title", "name.first", "name.last",
	"location", "location.street", "location.street.number", "location.street.name",
	"location.city", "location.state", "location.country",
	"location.coordinates", "location.coordinates.latitude", "location.coordinates.longitude",
	"location.timezone", "location.timezone.offset", "location.timezone.description",
	"email",
	"login", "login.uuid", "login.username", "login.password", "login.salt",
	"login.md5", "login.sha1", "login.sha256",
	"dob", "dob.date", "dob.age",
	"registered", "registered.date", "registered.age",
	"phone", "cell",
	"id",
	"picture", "picture.large", "picture.medium", "picture.thumbnail",
	"nat",
}

// Without returns body with the value at path removed. Paths are dotted and
// array elements are addressed by index, e.g. "results.3.login.md5".
func Without(body []byte, path string) ([]byte, error) {
	return edit(body, path, func(parent map[string]any, key string) error {
		if _, ok := parent[key]; !ok {
			return fmt.Errorf("no field %q", path)
		}
		delete(parent, key)
		return nil
	})
}

// With returns body with the value at path replaced by v.
func With(body []byte, path string, v any) ([]byte, error) {
	return edit(body, path, func(parent map[string]any, key string) error {
		parent[key] = v
		return nil
	})
}

func edit(body []byte, path string, fn func(parent map[string]any, key string) error) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("edit %s: %w", path, err)
	}

	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[p]
		case []any:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("edit %s: bad index %q", path, p)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("edit %s: cannot descend into %q", path, p)
		}
	}

	parent, ok := cur.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("edit %s: parent is not an object", path)
	}
	if err := fn(parent, parts[len(parts)-1]); err != nil {
		return nil, fmt.Errorf("edit %s: %w", path, err)
	}

	return json.Marshal(doc)
}
