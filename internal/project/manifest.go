package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in slang.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is a loaded slang.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of slang.toml.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	// Root is the source directory relative to the manifest; "" means the manifest directory.
	Root string `toml:"root,omitempty"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// DiagnosticsConfig holds defaults for `slang diag`; CLI flags win.
type DiagnosticsConfig struct {
	Max    int    `toml:"max,omitempty"`
	Format string `toml:"format,omitempty"` // pretty | json
	Cache  bool   `toml:"cache,omitempty"`
	Jobs   int    `toml:"jobs,omitempty"`
	UI     string `toml:"ui,omitempty"` // auto | on | off
}

// DefaultConfig is what `slang init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package:     PackageConfig{Name: name},
		Run:         RunConfig{Main: "main.slang"},
		Diagnostics: DiagnosticsConfig{Max: 100, Format: "pretty"},
	}
}

// LoadConfig parses and validates one slang.toml.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	switch cfg.Diagnostics.Format {
	case "", "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].format must be \"pretty\" or \"json\", got %q", path, cfg.Diagnostics.Format)
	}
	switch cfg.Diagnostics.UI {
	case "", "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].ui must be auto, on or off, got %q", path, cfg.Diagnostics.UI)
	}
	if cfg.Diagnostics.Max < 0 || cfg.Diagnostics.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics] limits must not be negative", path)
	}
	return cfg, nil
}

// LoadManifest finds slang.toml above startDir. ok is false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// SourceRoot is the directory `slang diag` walks by default.
func (m *Manifest) SourceRoot() string {
	root := strings.TrimSpace(m.Config.Package.Root)
	if root == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(root))
}

// MainPath resolves [run].main, which must name an existing .slang file.
func (m *Manifest) MainPath() (string, error) {
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	if mainRel == "" {
		return "", fmt.Errorf("%s: missing [run].main", m.Path)
	}
	mainPath := filepath.Join(m.SourceRoot(), filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != ".slang" {
		return "", fmt.Errorf("%s: [run].main must be a .slang file", m.Path)
	}
	return mainPath, nil
}

// WriteConfig encodes cfg to path, refusing to overwrite unless force is set.
func WriteConfig(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
