package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
checks = ["collapsible-if"]
disabled = ["double-neg"]
max-diagnostics = 10
warnings-as-errors = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Lint.Checks) != 1 || cfg.Lint.Checks[0] != "collapsible-if" {
		t.Errorf("checks = %v", cfg.Lint.Checks)
	}
	if cfg.Lint.MaxDiagnostics != 10 || !cfg.Lint.WarningsAsErrors {
		t.Errorf("cfg = %+v", cfg.Lint)
	}
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
cheks = ["collapsible-if"]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("a typo in the manifest must not pass silently")
	}
}

func TestLoad_EmptyManifestKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lint.MaxDiagnostics != Default().Lint.MaxDiagnostics {
		t.Errorf("max diagnostics = %d", cfg.Lint.MaxDiagnostics)
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[lint]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want manifest in %q", path, root)
	}
}

func TestDiscover_DefaultWhenAbsent(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Lint.MaxDiagnostics == 0 {
		t.Error("defaults should apply")
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name  string
		lint  Lint
		check string
		want  bool
	}{
		{"all by default", Lint{}, "collapsible-if", true},
		{"explicit list includes", Lint{Checks: []string{"collapsible-if"}}, "collapsible-if", true},
		{"explicit list excludes", Lint{Checks: []string{"collapsible-if"}}, "double-neg", false},
		{"disabled wins", Lint{Checks: []string{"x"}, Disabled: []string{"x"}}, "x", false},
		{"disabled from full set", Lint{Disabled: []string{"double-neg"}}, "double-neg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lint.Enabled(tt.check); got != tt.want {
				t.Errorf("Enabled(%q) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}
