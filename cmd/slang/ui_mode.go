package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// uiMode is the --ui flag of `slang diag` and the [diagnostics].ui key of
// slang.toml. It implements pflag.Value.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = []uiMode{uiModeAuto, uiModeOn, uiModeOff}

func (m *uiMode) String() string { return string(*m) }

func (m *uiMode) Type() string { return "auto|on|off" }

func (m *uiMode) Set(value string) error {
	v := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if v == "" {
		v = uiModeAuto
	}
	if !slices.Contains(uiModes, v) {
		return fmt.Errorf("invalid ui mode %q (expected auto|on|off)", value)
	}
	*m = v
	return nil
}

// enabled decides whether the bubbletea progress view runs. auto asks for
// a terminal on out; a buffer or pipe never gets the TUI.
func (m uiMode) enabled(out io.Writer) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
