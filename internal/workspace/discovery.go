// Package workspace runs the single-file pipeline (annotation extraction,
// typed AST building, checking) across a directory tree: discovering
// source files, merging their
// ---@class/---@enum declarations into one workspace-wide registry
// (spec.md §5's deterministic merge), then checking every file against
// that merged snapshot in parallel (spec.md §5: "Parallelism across
// files is permitted by the orchestrator because per-file checks share
// only an immutable snapshot of the workspace registry").
//
// Grounded on gnana997-uispec/pkg/scanner/discovery.go's
// doublestar-glob WalkDir pattern, generalized with ignore_dir and
// .gitignore handling per spec.md §6.3.
package workspace

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/typua-lang/typua/internal/workspaceconfig"
)

// defaultInclude is used when .typua.toml sets no [runtime] include
// patterns: every *.lua file under the root.
var defaultInclude = []string{"**/*.lua"}

// Discover walks root, returning a sorted slice of absolute paths to
// every file cfg selects: matching an include pattern, under none of
// cfg.Workspace.IgnoreDir, and (when cfg.Workspace.UseGitignore) not
// excluded by a top-level .gitignore.
func Discover(root string, cfg *workspaceconfig.Config) ([]string, error) {
	include := cfg.Runtime.Include
	if len(include) == 0 {
		include = defaultInclude
	}
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	ignoreDirs := map[string]bool{}
	for _, d := range cfg.Workspace.IgnoreDir {
		ignoreDirs[d] = true
	}

	var ignore *gitignore
	if cfg.Workspace.UseGitignore {
		ignore, err = loadGitignore(filepath.Join(absRoot, ".gitignore"))
		if err != nil {
			return nil, err
		}
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && (ignoreDirs[d.Name()] || (ignore != nil && ignore.matches(relPath, true))) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignore != nil && ignore.matches(relPath, false) {
			return nil
		}

		matched := false
		for _, pattern := range include {
			if m, _ := doublestar.PathMatch(pattern, relPath); m {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}
	sort.Strings(files)
	return files, nil
}

// gitignore is a deliberately small subset of .gitignore matching:
// comments, blank lines, "!" negation, and doublestar glob bodies. It
// does not implement directory-scoped patterns with interior slashes
// anchoring to the file's own directory — every pattern is matched
// against the path relative to the ignore file's directory.
type gitignore struct {
	dir      string
	patterns []gitignorePattern
}

type gitignorePattern struct {
	glob    string
	negate  bool
	dirOnly bool
}

func loadGitignore(path string) (*gitignore, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	g := &gitignore{dir: filepath.Dir(path)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := gitignorePattern{}
		if strings.HasPrefix(line, "!") {
			p.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		line = strings.TrimPrefix(line, "/")
		if !strings.Contains(line, "/") {
			line = "**/" + line
		}
		p.glob = line
		g.patterns = append(g.patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return g, nil
}

func (g *gitignore) matches(relPath string, isDir bool) bool {
	ignored := false
	for _, p := range g.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if m, _ := doublestar.PathMatch(p.glob, relPath); m {
			ignored = !p.negate
		}
	}
	return ignored
}
