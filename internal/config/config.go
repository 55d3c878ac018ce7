// Package config loads rill.toml, the per-project lint manifest.
// Discovery walks up from the start directory, so running the tool from
// a subdirectory picks up the project's manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the discovery walk looks for.
const ManifestName = "rill.toml"

// Config is the root of rill.toml.
type Config struct {
	Lint Lint `toml:"lint"`
}

// Lint configures the check run.
type Lint struct {
	// Checks, when non-empty, is the exact set of checks to run.
	Checks []string `toml:"checks"`
	// Disabled removes checks from the run; applies after Checks.
	Disabled []string `toml:"disabled"`
	// MaxDiagnostics caps collected diagnostics per run. Zero keeps the
	// built-in default.
	MaxDiagnostics uint `toml:"max-diagnostics"`
	// WarningsAsErrors promotes every warning to an error for exit-code
	// purposes.
	WarningsAsErrors bool `toml:"warnings-as-errors"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Lint: Lint{MaxDiagnostics: 256},
	}
}

// Find walks up from startDir to locate rill.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest file. Missing sections fall back to defaults;
// unknown keys are an error so typos do not silently disable checks.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Lint.MaxDiagnostics == 0 {
		cfg.Lint.MaxDiagnostics = Default().Lint.MaxDiagnostics
	}
	return cfg, nil
}

// Discover finds and loads the nearest manifest. When none exists it
// returns Default() and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Enabled reports whether the named check should run.
func (l Lint) Enabled(name string) bool {
	if len(l.Checks) > 0 {
		found := false
		for _, c := range l.Checks {
			if c == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, d := range l.Disabled {
		if d == name {
			return false
		}
	}
	return true
}
