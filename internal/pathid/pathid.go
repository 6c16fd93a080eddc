// internal/pathid/pathid.go
package pathid

import (
	"fmt"
	"strings"
)

// Delimiter separates component names inside a path key.
const Delimiter = ", "

// Separator is the character a hand-typed key is split on. Whitespace around
// it is optional, so component names must not contain it.
const Separator = ","

// Key joins names into the canonical path key.
func Key(names []string) string {
	return strings.Join(names, Delimiter)
}

// Parse splits a path key back into component names. An empty key has no
// components.
func Parse(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, Delimiter)
}

// ContainsDelimiter reports whether name would break key parsing. Any comma
// does, since Normalize splits string keys on a bare comma.
func ContainsDelimiter(name string) bool {
	return strings.Contains(name, Separator)
}

// Normalize accepts a path as a key string or as a name sequence and returns
// its canonical key. Surrounding whitespace of each name is trimmed so that
// hand-typed keys like "A,B" and "A , B" resolve to "A, B".
func Normalize(path any) (string, error) {
	switch p := path.(type) {
	case string:
		return Key(trimAll(strings.Split(p, Separator))), nil
	case []string:
		return Key(trimAll(p)), nil
	case []any:
		names := make([]string, 0, len(p))
		for i, v := range p {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("path element %d is %T, not a string", i, v)
			}
			names = append(names, s)
		}
		return Key(trimAll(names)), nil
	default:
		return "", fmt.Errorf("unsupported path type %T", path)
	}
}

func trimAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}
