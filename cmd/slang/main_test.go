package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slang/internal/project"
)

// resetFlags restores defaults; cobra keeps flag state between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func expectExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exit *exitError
	if !errors.As(err, &exit) || exit.code != code {
		t.Fatalf("expected exit status %d, got %v", code, err)
	}
}

func TestRunPrintsProgramOutput(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.slang", `func main() { print("\(1 + 2 * 3)") }`)
	stdout, stderr, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	if stdout != "7\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "7\n")
	}
}

func TestRunRuntimeErrorPrintsBacktrace(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.slang", `func div(a: Int, b: Int) -> Int { return a / b }
func main() { print(div(1, 0)) }
`)
	_, stderr, err := execute(t, "run", "--trace-level", "fault", "--trace-mode", "ring", path)
	expectExitCode(t, err, 1)
	for _, want := range []string{"division by zero", "backtrace:", "div", "trace: last events", "✗ run"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestCheckReportsTypeErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.slang", `func main() { var x: Int = "s" }`)
	_, stderr, err := execute(t, "check", bad)
	expectExitCode(t, err, 1)
	if !strings.Contains(stderr, "ERROR") {
		t.Fatalf("expected an error diagnostic, got:\n%s", stderr)
	}

	good := writeSource(t, dir, "good.slang", `func main() { print(1) }`)
	stdout, stderr, err := execute(t, "check", good)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stderr)
	}
	if !strings.HasSuffix(stdout, ": ok\n") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestTokenizeStopsOnLexError(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.slang", `func main() { print("open) }`)
	stdout, stderr, err := execute(t, "tokenize", path)
	expectExitCode(t, err, 1)
	if stdout != "" || stderr == "" {
		t.Fatalf("expected only diagnostics, stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestDefAndRefs(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.slang", `func twice(n: Int) -> Int {
	return n * 2
}
func main() {
	print(twice(2))
	print(twice(3))
}
`)
	stdout, stderr, err := execute(t, "def", path, "5:8")
	if err != nil {
		t.Fatalf("def: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "main.slang:1:6: function twice") {
		t.Fatalf("def output = %q", stdout)
	}

	stdout, stderr, err = execute(t, "refs", "--include-decl", path, "6:8")
	if err != nil {
		t.Fatalf("refs: %v\n%s", err, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[0], ":1:6") || !strings.HasSuffix(lines[2], ":6:8") {
		t.Fatalf("refs output = %q", stdout)
	}

	_, _, err = execute(t, "def", path, "3:1")
	expectExitCode(t, err, 1)
}

func TestDiagDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.slang", `func main() { print(1) }`)
	writeSource(t, dir, "bad.slang", `func main() { print(undefinedName) }`)

	stdout, _, err := execute(t, "diag", "--format", "json", "--ui", "off", dir)
	expectExitCode(t, err, 1)
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if payload.Count == 0 || !strings.Contains(stdout, "bad.slang") || strings.Contains(stdout, "good.slang") {
		t.Fatalf("unexpected diagnostics: %s", stdout)
	}
}

func TestInitCreatesProject(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")
	stdout, stderr, err := execute(t, "init", target)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, project.ManifestName) {
		t.Fatalf("stdout = %q", stdout)
	}
	m, ok, err := project.LoadManifest(target)
	if err != nil || !ok {
		t.Fatalf("load manifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name = %q", m.Config.Package.Name)
	}
	if _, err := m.MainPath(); err != nil {
		t.Fatalf("main path: %v", err)
	}

	if _, _, err := execute(t, "init", target); err == nil {
		t.Fatalf("second init should refuse to overwrite")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Tool != "slang" || payload.Version == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParsePosition(t *testing.T) {
	line, col, err := parsePosition("12:7")
	if err != nil || line != 12 || col != 7 {
		t.Fatalf("parsePosition = %d, %d, %v", line, col, err)
	}
	for _, bad := range []string{"12", "0:1", "1:0", "a:b", ""} {
		if _, _, err := parsePosition(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDiagShortFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.slang", "func main() {\n\tprint(missing)\n}\n")
	stdout, _, err := execute(t, "diag", "--format", "short", path)
	expectExitCode(t, err, 1)
	if !strings.Contains(stdout, "bad.slang:2:8") {
		t.Fatalf("short output = %q", stdout)
	}
}

func TestUIModeFlag(t *testing.T) {
	var m uiMode
	for in, want := range map[string]uiMode{"": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff} {
		if err := m.Set(in); err != nil || m != want {
			t.Fatalf("Set(%q) = %q, %v", in, m, err)
		}
	}
	if err := m.Set("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	var buf bytes.Buffer
	if uiModeAuto.enabled(&buf) || !uiModeOn.enabled(&buf) || uiModeOff.enabled(&buf) {
		t.Fatalf("auto must not start the TUI on a buffer")
	}
}

func TestManifestUIDefault(t *testing.T) {
	resetFlags(rootCmd)
	defer resetFlags(rootCmd)
	m := &project.Manifest{Config: project.Config{Diagnostics: project.DiagnosticsConfig{UI: "off"}}}
	if err := applyDiagDefaults(diagCmd, m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diagUI != uiModeOff {
		t.Fatalf("ui = %q, want off from slang.toml", diagUI)
	}

	resetFlags(rootCmd)
	if err := diagCmd.Flags().Set("ui", "on"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := applyDiagDefaults(diagCmd, m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diagUI != uiModeOn {
		t.Fatalf("explicit --ui must win over slang.toml, got %q", diagUI)
	}
}
