package workspace

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/checker"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/rawast"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
	"github.com/typua-lang/typua/internal/workspaceconfig"
)

// ParseFunc adapts an external Lua-dialect parser (spec.md §1) to the
// orchestrator: given a file's path and source text, it returns the raw
// AST rawast.Program consumes, plus any SyntaxError diagnostics for
// malformed input. A parser that recovers a partial tree from broken
// input returns both that tree and the diagnostics describing what it
// could not parse (spec.md §7: syntactic errors never block analysis
// of whatever AST was recovered).
type ParseFunc func(path, source string) (rawast.Program, []diagnostics.Diagnostic, error)

// FileResult is one file's outcome within a Result.
type FileResult struct {
	Path   string
	Result *diagnostics.CheckResult
}

// Result is the outcome of checking an entire workspace.
type Result struct {
	Files    []FileResult
	Registry *types.Registry
}

// fileSource bundles one file's path, text, parsed AST, and the
// registry contribution of its own ---@class/---@enum declarations —
// the work product of phase one, consumed by phase two.
type fileSource struct {
	path       string
	program    rawast.Program
	idx        *annotation.AnnotationIndex
	own        *types.Registry
	parseDiags []diagnostics.Diagnostic
}

// Check discovers every file cfg selects under root, merges their
// declared classes/enums into one workspace registry, then checks each
// file against that merged snapshot. Phase one (read, parse, extract)
// and phase two (typed-AST build, check) each run with up to jobs
// goroutines in flight; jobs <= 0 means unbounded. File order in the
// returned Result is always the same sorted order Discover produces,
// regardless of goroutine completion order (spec.md §5's determinism
// requirement).
func Check(ctx context.Context, root string, cfg *workspaceconfig.Config, parse ParseFunc, jobs int) (*Result, error) {
	paths, err := Discover(root, cfg)
	if err != nil {
		return nil, err
	}

	sources := make([]*fileSource, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			source := string(raw)
			program, parseDiags, err := parse(path, source)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			idx, registry := annotation.FromSource(source)
			sources[i] = &fileSource{
				path:       path,
				program:    program,
				idx:        idx,
				own:        registry,
				parseDiags: parseDiags,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := types.NewRegistry()
	for _, fs := range sources {
		merged.Extend(fs.own)
	}

	results := make([]FileResult, len(sources))
	var mu sync.Mutex
	g2, gctx2 := errgroup.WithContext(ctx)
	if jobs > 0 {
		g2.SetLimit(jobs)
	}
	for i, fs := range sources {
		i, fs := i, fs
		g2.Go(func() error {
			select {
			case <-gctx2.Done():
				return gctx2.Err()
			default:
			}
			typed := typedast.Build(fs.program, fs.idx)
			checked := checker.Check(fs.path, merged, typed)
			if len(fs.parseDiags) > 0 {
				checked.Diagnostics = append(append([]diagnostics.Diagnostic{}, fs.parseDiags...), checked.Diagnostics...)
			}
			mu.Lock()
			results[i] = FileResult{Path: fs.path, Result: checked}
			mu.Unlock()
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	return &Result{Files: results, Registry: merged}, nil
}
