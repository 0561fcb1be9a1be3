package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// StringID names an interned identifier. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner maps identifiers to dense IDs so that scopes, types and
// environments compare names as integers. One Interner serves one
// program; it is not safe for concurrent use.
type Interner struct {
	names []string
	ids   map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		names: []string{""},
		ids:   map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("identifier table overflow: %w", err))
	}
	// s часто срез буфера файла: клонируем, чтобы не держать его целиком
	s = strings.Clone(s)
	in.names = append(in.names, s)
	in.ids[s] = StringID(n)
	return StringID(n)
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.names) {
		return "", false
	}
	return in.names[id], true
}

// MustLookup panics on an ID this interner never returned.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown string id %d", id))
	}
	return s
}

// Len counts NoStringID too.
func (in *Interner) Len() int { return len(in.names) }
