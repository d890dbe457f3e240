// Package diagnostics defines the checker's output shape (spec.md
// §4.8): the Diagnostic bundle, its severity/code enums, and the
// CheckResult that pairs diagnostics with the inferred type map.
//
// The original funxy/internal/diagnostics package was not included in
// this retrieval pack, so this is grounded on its *usage* visible in
// funxy/internal/analyzer/analyzer.go (DiagnosticError{File, Token,
// Code}, dedupe-by-"line:col:code" key, sort by line then column) and
// funxy/cmd/funxy/main.go's plain-text reporting idiom.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/typua-lang/typua/internal/position"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code identifies the kind of violation a Diagnostic reports.
type Code string

const (
	SyntaxError         Code = "SyntaxError"
	AssignTypeMismatch  Code = "AssignTypeMismatch"
	ParamTypeMismatch   Code = "ParamTypeMismatch"
	ReturnTypeMismatch  Code = "ReturnTypeMismatch"
	UndefinedField      Code = "UndefinedField"
)

// Diagnostic is one reported violation.
type Diagnostic struct {
	File     string
	Message  string
	Severity Severity
	Range    position.Range
	Code     Code
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Range.Start.Line, d.Range.Start.Column, d.Message)
}

// key identifies a diagnostic for deduplication: same position and code
// collapse to one entry, matching funxy's addError dedupe policy.
func (d Diagnostic) key() string {
	return fmt.Sprintf("%d:%d:%s", d.Range.Start.Line, d.Range.Start.Column, d.Code)
}

// TypeMapEntry is one entry of CheckResult.TypeMap (spec.md §4.8):
// "Position -> {ty_display, end_line, end_character}".
type TypeMapEntry struct {
	Display       string
	EndLine       int
	EndCharacter  int
}

// CheckResult is the output of analyzing one file (spec.md §2).
type CheckResult struct {
	Diagnostics []Diagnostic
	TypeMap     map[position.Position]TypeMapEntry
}

// NewCheckResult returns an empty result ready for accumulation.
func NewCheckResult() *CheckResult {
	return &CheckResult{TypeMap: map[position.Position]TypeMapEntry{}}
}

// Collector accumulates diagnostics during a check, deduplicating by
// position+code and producing them sorted by position on Finish
// (grounded on funxy's walker.addError/getErrors).
type Collector struct {
	seen map[string]Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: map[string]Diagnostic{}}
}

// Add records d, the latest report for a given position+code winning.
func (c *Collector) Add(d Diagnostic) {
	c.seen[d.key()] = d
}

// Finish returns the accumulated diagnostics sorted by position, then code.
func (c *Collector) Finish() []Diagnostic {
	out := make([]Diagnostic, 0, len(c.seen))
	for _, d := range c.seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Range.Start != out[j].Range.Start {
			return out[i].Range.Start.Less(out[j].Range.Start)
		}
		return out[i].Code < out[j].Code
	})
	return out
}
