// Package workspaceconfig loads and validates the `.typua.toml`
// configuration file described in spec.md §6.3: the Lua dialect version
// to assume, which files to analyze, and the workspace's library/ignore
// directories. Parsed with github.com/BurntSushi/toml rather than
// hand-rolled parsing, grounded on dingo/pkg/config's Load/loadConfigFile
// shape.
package workspaceconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// RuntimeVersion is the Lua dialect version spec.md §6.3 names.
type RuntimeVersion string

const (
	Lua51  RuntimeVersion = "lua51"
	Lua52  RuntimeVersion = "lua52"
	Lua53  RuntimeVersion = "lua53"
	Lua54  RuntimeVersion = "lua54"
	LuaJIT RuntimeVersion = "luajit"
)

// IsValid reports whether v is one of the recognized runtime versions.
func (v RuntimeVersion) IsValid() bool {
	switch v {
	case Lua51, Lua52, Lua53, Lua54, LuaJIT:
		return true
	default:
		return false
	}
}

// RuntimeConfig is the `[runtime]` table.
type RuntimeConfig struct {
	Version RuntimeVersion `toml:"version"`
	Include []string       `toml:"include"`
}

// WorkspaceConfig is the `[workspace]` table.
type WorkspaceConfig struct {
	Library      []string `toml:"library"`
	IgnoreDir    []string `toml:"ignore_dir"`
	UseGitignore bool     `toml:"use_gitignore"`
}

// Config is the full `.typua.toml` shape (spec.md §6.3).
type Config struct {
	Runtime   RuntimeConfig   `toml:"runtime"`
	Workspace WorkspaceConfig `toml:"workspace"`
}

// Default returns the configuration used when no `.typua.toml` is
// found: luajit, analyze every *.lua file under the root.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{Version: LuaJIT},
	}
}

// Load reads and parses path, expanding `~`/`$HOME` in every glob
// pattern and validating the runtime version. A missing or unreadable
// file is an error; callers that want Default when no file exists look
// the file up with Find first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Runtime.Version == "" {
		cfg.Runtime.Version = LuaJIT
	}
	if !cfg.Runtime.Version.IsValid() {
		return nil, fmt.Errorf("%s: invalid runtime version %q", path, cfg.Runtime.Version)
	}
	cfg.Runtime.Include = expandAll(cfg.Runtime.Include)
	cfg.Workspace.Library = expandAll(cfg.Workspace.Library)
	cfg.Workspace.IgnoreDir = expandAll(cfg.Workspace.IgnoreDir)
	return cfg, nil
}

// Find walks up from dir looking for a `.typua.toml`, the same
// parent-walking search FindConfig in the teacher's ext package uses for
// funxy.yaml. Returns "" with a nil error when none is found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ".typua.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// expandPattern applies spec.md §6.3's "`~`/`$HOME` expansion" to one
// glob pattern, leaving patterns that don't start with either untouched.
func expandPattern(pattern string) string {
	home := os.Getenv("HOME")
	switch {
	case pattern == "~" || strings.HasPrefix(pattern, "~/"):
		if home == "" {
			return pattern
		}
		return filepath.Join(home, strings.TrimPrefix(pattern, "~"))
	case strings.HasPrefix(pattern, "$HOME"):
		if home == "" {
			return pattern
		}
		return home + strings.TrimPrefix(pattern, "$HOME")
	default:
		return pattern
	}
}

func expandAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = expandPattern(p)
	}
	return out
}
