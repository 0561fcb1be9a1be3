package diagfmt

// PathMode selects how a file path appears in front of a diagnostic.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // короткие пути как есть, длинные абсолютные по имени
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

// ParsePathMode reads a --path-mode value; "" means auto.
func ParsePathMode(s string) (PathMode, bool) {
	if s == "" {
		return PathModeAuto, true
	}
	for m, name := range pathModeNames {
		if name == s {
			return PathMode(m), true // #nosec G115 -- index of a four-element table
		}
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// PrettyOpts drives Pretty and FormatRuntime.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines printed above the primary one.
	Context   int
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts drives JSON. Max trims the rendered list only; the bag keeps
// everything.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	PathMode         PathMode
	Max              int
}
