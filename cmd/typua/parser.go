package main

import (
	"fmt"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/rawast"
	"github.com/typua-lang/typua/internal/workspace"
)

// unconfiguredParser is the default workspace.ParseFunc wired into
// every command below. The concrete Lua-dialect lexer/parser producing
// rawast.Program is, by design, an external collaborator this module
// does not implement (SPEC_FULL.md §1): a real deployment of typua
// links a Lua parser and passes its own workspace.ParseFunc into
// runCheck/runLSP in place of this one. Left wired to a descriptive
// error rather than a silent no-op so a misconfigured build fails
// loudly at the first file instead of reporting zero diagnostics
// everywhere.
var unconfiguredParser workspace.ParseFunc = func(path, source string) (rawast.Program, []diagnostics.Diagnostic, error) {
	return rawast.Program{}, nil, fmt.Errorf("%s: no Lua parser configured (cmd/typua.unconfiguredParser is a placeholder — link a real rawast-producing parser)", path)
}
