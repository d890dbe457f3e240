// Package annotation extracts ---@ doc-comment tags from Lua-dialect
// source text into a line-indexed AnnotationIndex plus a partial
// type Registry of declared classes and enums (spec.md §3.4, §4.1).
package annotation

import "github.com/typua-lang/typua/internal/types"

// Usage is the kind of declaration an Annotation carries.
type Usage int

const (
	Type Usage = iota
	Param
	Return
)

func (u Usage) String() string {
	switch u {
	case Param:
		return "param"
	case Return:
		return "return"
	default:
		return "type"
	}
}

// Annotation is one parsed ---@ tag (spec.md §3.4).
type Annotation struct {
	Usage Usage
	Name  string // optional: param/result name, empty if absent
	AnnotatedType types.AnnotatedType
}

// AnnotationIndex is the per-file output of extraction: annotations and
// class hints keyed by the source line they were attributed to.
type AnnotationIndex struct {
	ByLine     map[int][]Annotation
	ClassHints map[int][]string
	generics   map[int][]string
}

// NewAnnotationIndex returns an empty index.
func NewAnnotationIndex() *AnnotationIndex {
	return &AnnotationIndex{
		ByLine:     map[int][]Annotation{},
		ClassHints: map[int][]string{},
		generics:   map[int][]string{},
	}
}

// At returns the annotations attributed to line (1-based), or nil.
func (idx *AnnotationIndex) At(line int) []Annotation {
	return idx.ByLine[line]
}

// ClassHintsAt returns the class hints attributed to line, or nil.
func (idx *AnnotationIndex) ClassHintsAt(line int) []string {
	return idx.ClassHints[line]
}

// ParamTypes collects the Param annotations at line into a name -> type map.
func (idx *AnnotationIndex) ParamTypes(line int) map[string]types.AnnotatedType {
	out := map[string]types.AnnotatedType{}
	for _, a := range idx.ByLine[line] {
		if a.Usage == Param && a.Name != "" {
			out[a.Name] = a.AnnotatedType
		}
	}
	return out
}

// Returns collects the Return annotations at line, in declaration order.
func (idx *AnnotationIndex) Returns(line int) []Annotation {
	var out []Annotation
	for _, a := range idx.ByLine[line] {
		if a.Usage == Return {
			out = append(out, a)
		}
	}
	return out
}

// Generics collects the ---@generics names attributed to line.
func (idx *AnnotationIndex) Generics(line int) []string {
	return idx.generics[line]
}
