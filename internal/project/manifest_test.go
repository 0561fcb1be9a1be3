package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"
root = "src"

[run]
main = "main.slang"

[diagnostics]
max = 20
format = "json"
cache = true
`)
	writeFile(t, filepath.Join(root, "src", "main.slang"), "func main() {}\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Diagnostics.Max != 20 || !m.Config.Diagnostics.Cache {
		t.Fatalf("unexpected config: %+v", m.Config)
	}
	mainPath, err := m.MainPath()
	if err != nil {
		t.Fatalf("MainPath: %v", err)
	}
	if mainPath != filepath.Join(root, "src", "main.slang") {
		t.Fatalf("MainPath = %s", mainPath)
	}
}

func TestLoadManifestAbsent(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no manifest, ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		substr  string
	}{
		{name: "no package", content: "[run]\nmain = \"a.slang\"\n", wantErr: ErrPackageSectionMissing},
		{name: "blank name", content: "[package]\nname = \"  \"\n", wantErr: ErrPackageNameMissing},
		{name: "bad format", content: "[package]\nname = \"x\"\n[diagnostics]\nformat = \"xml\"\n", substr: "format"},
		{name: "bad ui", content: "[package]\nname = \"x\"\n[diagnostics]\nui = \"maybe\"\n", substr: "[diagnostics].ui"},
		{name: "unknown key", content: "[package]\nname = \"x\"\nedition = 2\n", substr: "unknown key"},
		{name: "bad toml", content: "[package\n", substr: "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Fatalf("expected %q in %v", tt.substr, err)
			}
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	if err := WriteConfig(path, DefaultConfig("hello"), false); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := WriteConfig(path, DefaultConfig("hello"), false); err == nil {
		t.Fatalf("second write without force should fail")
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Package.Name != "hello" || cfg.Run.Main != "main.slang" || cfg.Diagnostics.Format != "pretty" {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
}

func TestMainPathRejectsNonSlang(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.txt"), "")
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root, Config: Config{Run: RunConfig{Main: "main.txt"}}}
	if _, err := m.MainPath(); err == nil {
		t.Fatalf("expected error for non-.slang main")
	}
}

func TestCombineDependsOnParts(t *testing.T) {
	var content Digest
	content[0] = 1
	a := Combine(content, []byte("sema"))
	b := Combine(content, []byte("syntax"))
	if a == b || a.IsZero() {
		t.Fatalf("digests should differ and be non-zero")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length %d", len(a.String()))
	}
}

func TestFindManifestSkipsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"x\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	inner := filepath.Join(root, "src", ManifestName)
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, ok, err := FindManifest(inner)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if got != filepath.Join(root, ManifestName) {
		t.Fatalf("found %s, want the file at the root", got)
	}
}
