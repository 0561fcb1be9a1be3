package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slang/internal/project"
)

// loadManifest finds slang.toml upwards from the working directory. A
// missing manifest is not an error.
func loadManifest() (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, ok, err := project.LoadManifest(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return m, nil
}

// resolveTarget picks the path argument or, without one, a manifest default.
func resolveTarget(args []string, fromManifest func(*project.Manifest) (string, error)) (string, *project.Manifest, error) {
	m, err := loadManifest()
	if err != nil {
		return "", nil, err
	}
	if len(args) > 0 {
		return args[0], m, nil
	}
	if m == nil {
		return "", nil, fmt.Errorf("no input given and no %s found", project.ManifestName)
	}
	target, err := fromManifest(m)
	return target, m, err
}

// applyDiagDefaults copies [diagnostics] into flags the user did not set.
func applyDiagDefaults(cmd *cobra.Command, m *project.Manifest) error {
	if m == nil {
		return nil
	}
	cfg := m.Config.Diagnostics
	set := func(name, value string, persistent bool) error {
		flags := cmd.Flags()
		if persistent {
			flags = cmd.Root().PersistentFlags()
		}
		if flags.Changed(name) || flags.Lookup(name) == nil {
			return nil
		}
		return flags.Set(name, value)
	}
	if cfg.Max > 0 {
		if err := set("max-diagnostics", fmt.Sprint(cfg.Max), true); err != nil {
			return err
		}
	}
	if cfg.Format != "" {
		if err := set("format", cfg.Format, false); err != nil {
			return err
		}
	}
	if cfg.Cache {
		if err := set("disk-cache", "true", false); err != nil {
			return err
		}
	}
	if cfg.UI != "" {
		if err := set("ui", cfg.UI, false); err != nil {
			return err
		}
	}
	if cfg.Jobs > 0 {
		if err := set("jobs", fmt.Sprint(cfg.Jobs), false); err != nil {
			return err
		}
	}
	return nil
}
