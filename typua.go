// Package typua is the library entry point for the static type analyzer
// described in spec.md §2: AnnotationExtractor -> TypedAstBuilder ->
// Checker, producing a CheckResult. internal/lspserver is a thin caller
// of Analyze; internal/workspace (driven by `typua check`) runs the same
// three stages itself for every file of a directory tree.
package typua

import (
	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/checker"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/rawast"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// Analyze runs the full pipeline over one file's raw AST and source
// text, checking it against registry (spec.md §6.1's library surface:
// "Analyze(path, source, program, registry) -> CheckResult"). registry
// should already be merged across the workspace (internal/workspace) so
// cross-file ---@class references resolve.
func Analyze(path string, source string, program rawast.Program, registry *types.Registry) (*diagnostics.CheckResult, error) {
	idx, _ := annotation.FromSource(source)
	typed := typedast.Build(program, idx)
	return checker.Check(path, registry, typed), nil
}

// ExtractRegistry runs only the annotation extractor, returning the
// partial TypeRegistry a file's own ---@class/---@enum declarations
// contribute (spec.md §3.4). internal/workspace does not go through
// this function: it calls annotation.FromSource directly when building
// the merged workspace registry.
func ExtractRegistry(source string) *types.Registry {
	_, registry := annotation.FromSource(source)
	return registry
}
