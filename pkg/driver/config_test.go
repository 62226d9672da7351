package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zygr/frontend-go/pkg/diagnostics"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zygr.yml")
	writeFile(t, path, strings.Join([]string{
		"include: [ts, .tsx]",
		"exclude: [node_modules, \"*.d.ts\"]",
		"globals: [process, require]",
		"jobs: 3",
		"format: json",
		"max_errors: 10",
		"phases: [type, resolution]",
	}, "\n"))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %s, got %s", path, cfg.Path)
	}
	if len(cfg.Include) != 2 || cfg.Include[0] != ".ts" || cfg.Include[1] != ".tsx" {
		t.Fatalf("unexpected include %v", cfg.Include)
	}
	if len(cfg.Globals) != 2 || cfg.Globals[0] != "process" {
		t.Fatalf("unexpected globals %v", cfg.Globals)
	}
	if cfg.Jobs != 3 || cfg.Format != "json" || cfg.MaxErrors != 10 {
		t.Fatalf("unexpected scalars jobs=%d format=%s max=%d", cfg.Jobs, cfg.Format, cfg.MaxErrors)
	}
	if len(cfg.Phases) != 2 || cfg.Phases[0] != diagnostics.PhaseType || cfg.Phases[1] != diagnostics.PhaseResolution {
		t.Fatalf("unexpected phases %v", cfg.Phases)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zygr.toml")
	writeFile(t, path, strings.Join([]string{
		`include = [".js"]`,
		`globals = ["window"]`,
		`jobs = 2`,
		`format = "yaml"`,
	}, "\n"))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != ".js" {
		t.Fatalf("unexpected include %v", cfg.Include)
	}
	if cfg.Jobs != 2 || cfg.Format != "yaml" {
		t.Fatalf("unexpected jobs=%d format=%s", cfg.Jobs, cfg.Format)
	}
	if len(cfg.Globals) != 1 || cfg.Globals[0] != "window" {
		t.Fatalf("unexpected globals %v", cfg.Globals)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"zygr.yml":  "include: [ts]\nstrict: true\n",
		"zygr.toml": "include = [\"ts\"]\nstrict = true\n",
	}
	for name, contents := range cases {
		path := filepath.Join(dir, name)
		writeFile(t, path, contents)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected unknown field error", name)
		} else if !strings.Contains(err.Error(), "strict") {
			t.Fatalf("%s: expected error to name the field, got %v", name, err)
		}
	}
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zygr.yaml")
	writeFile(t, path, strings.Join([]string{
		"include: [\"\"]",
		"jobs: -1",
		"format: xml",
		"max_errors: -2",
		"phases: [semantic]",
	}, "\n"))

	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(verr.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %v", verr.Issues)
	}
	if !strings.HasPrefix(verr.Error(), "config validation failed:\n- ") {
		t.Fatalf("unexpected rendering %q", verr.Error())
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zygr.yml")
	writeFile(t, path, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Format != "text" || len(cfg.Include) != 2 || cfg.Jobs < 1 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestDiscoverConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zygr.toml"), "jobs = 4\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := DiscoverConfig(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Jobs != 4 || cfg.Path != filepath.Join(root, "zygr.toml") {
		t.Fatalf("expected the root config, got %+v", cfg)
	}
}

func TestConfigMatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{"node_modules", "*.d.ts"}
	cases := map[string]bool{
		"src/app.ts":                 true,
		"src/app.js":                 true,
		"src/app.go":                 false,
		"node_modules/lib/index.js":  false,
		"types/globals.d.ts":         false,
		"src/nested/node_modules.ts": true,
	}
	for path, want := range cases {
		if got := cfg.Matches(path); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", path, got, want)
		}
	}
}
