package diag

import "strings"

// Severity orders diagnostics: only SevError stops the next layer.
type Severity uint8

const (
	SevNote Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevNote: "NOTE", SevWarning: "WARNING", SevError: "ERROR"}

// String is the upper-case form used in pretty headers.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lower-case form of JSON and short output. Unknown values
// read as notes.
func (s Severity) Label() string {
	if int(s) >= len(severityNames) {
		return "note"
	}
	return strings.ToLower(severityNames[s])
}
