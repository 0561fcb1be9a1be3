package trace

import (
	"fmt"
	"strings"
)

// Level is the finest scope a tracer keeps.
type Level uint8

const (
	LevelOff   Level = iota
	LevelFault       // faults only
	LevelStage       // files and stages
	LevelDecl        // plus function bodies in the checker
	LevelCall        // plus every interpreter call
)

var levelNames = [...]string{
	LevelOff:   "off",
	LevelFault: "fault",
	LevelStage: "stage",
	LevelDecl:  "decl",
	LevelCall:  "call",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively; "error" is kept as
// an alias of "fault".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "error" {
		return LevelFault, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Admits reports whether an event of this kind and scope is kept.
func (l Level) Admits(kind Kind, scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case kind == KindFault || kind == KindHeartbeat:
		return true
	case l == LevelFault:
		return false
	}
	// LevelStage пропускает ScopeStage и грубее, и так далее
	return uint8(scope) <= uint8(l)
}
