package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"zygr/frontend-go/pkg/diagnostics"
)

// ConfigNames lists the file names DiscoverConfig looks for, in order.
var ConfigNames = []string{"zygr.yml", "zygr.yaml", "zygr.toml"}

// Config holds the project settings read from zygr.yml or zygr.toml.
type Config struct {
	Path      string
	Include   []string
	Exclude   []string
	Globals   []string
	Jobs      int
	Format    string
	MaxErrors int
	Phases    []diagnostics.Phase
}

type configFile struct {
	Include   []string `yaml:"include" toml:"include"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
	Globals   []string `yaml:"globals" toml:"globals"`
	Jobs      int      `yaml:"jobs" toml:"jobs"`
	Format    string   `yaml:"format" toml:"format"`
	MaxErrors int      `yaml:"max_errors" toml:"max_errors"`
	Phases    []string `yaml:"phases" toml:"phases"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Include: []string{".ts", ".js"},
		Jobs:    runtime.GOMAXPROCS(0),
		Format:  "text",
	}
}

// LoadConfig parses a zygr.yml, zygr.yaml or zygr.toml file. Unknown keys
// are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	var raw configFile
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".toml":
		meta, err := toml.DecodeFile(absPath, &raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, fmt.Errorf("config: parse %s: unknown fields %s", absPath, strings.Join(keys, ", "))
		}
	case ".yml", ".yaml":
		file, err := os.Open(absPath)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", absPath, err)
		}
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported config format %s", absPath)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return nil, err
	}
	cfg.Path = absPath
	return cfg, nil
}

// DiscoverConfig walks up from start looking for a config file. It returns
// the defaults when none is found.
func DiscoverConfig(start string) (*Config, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		for _, name := range ConfigNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return LoadConfig(candidate)
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: stat %s: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return DefaultConfig(), nil
}

func (raw configFile) toConfig() (*Config, error) {
	cfg := DefaultConfig()
	var errs ValidationError

	if len(raw.Include) > 0 {
		cfg.Include = cfg.Include[:0]
		for i, ext := range raw.Include {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				errs.Issues = append(errs.Issues, fmt.Sprintf("include[%d] must be a non-empty extension", i))
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Include = append(cfg.Include, ext)
		}
	}
	for i, pattern := range raw.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("exclude[%d] is not a valid pattern: %q", i, pattern))
			continue
		}
		cfg.Exclude = append(cfg.Exclude, pattern)
	}
	for i, name := range raw.Globals {
		if strings.TrimSpace(name) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals[%d] must be a non-empty name", i))
			continue
		}
		cfg.Globals = append(cfg.Globals, strings.TrimSpace(name))
	}
	switch {
	case raw.Jobs < 0:
		errs.Issues = append(errs.Issues, "jobs must not be negative")
	case raw.Jobs > 0:
		cfg.Jobs = raw.Jobs
	}
	if raw.Format != "" {
		if !ValidFormat(raw.Format) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("format %q must be one of text, json, yaml", raw.Format))
		} else {
			cfg.Format = raw.Format
		}
	}
	if raw.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, "max_errors must not be negative")
	} else {
		cfg.MaxErrors = raw.MaxErrors
	}
	for _, name := range raw.Phases {
		phase, err := diagnostics.ParsePhase(name)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("phases: unknown phase %q", name))
			continue
		}
		cfg.Phases = append(cfg.Phases, phase)
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

// Matches reports whether path is a source file under the include and
// exclude rules. Exclude patterns match the slash-separated path or any of
// its segments.
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	included := false
	for _, want := range c.Include {
		if strings.EqualFold(ext, want) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	return !c.Excluded(path)
}

// Excluded reports whether path matches an exclude pattern.
func (c *Config) Excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	segments := strings.Split(slashed, "/")
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
		for _, segment := range segments {
			if ok, _ := filepath.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
