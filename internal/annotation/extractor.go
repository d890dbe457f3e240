package annotation

import (
	"regexp"
	"strings"

	"github.com/typua-lang/typua/internal/types"
)

var (
	tagLineRe = regexp.MustCompile(`^\s*---@(\w+)\s*(.*)$`)
	blankRe   = regexp.MustCompile(`^\s*$`)
	commentRe = regexp.MustCompile(`^\s*--`)
)

// pendingClass tracks the class currently open for ---@field accumulation.
type pendingClass struct {
	class *types.Class
}

// FromSource scans raw Lua-dialect source line by line for ---@
// tags, matching spec.md §4.1's "Input: raw source text" mode. It
// returns a line-indexed AnnotationIndex and the partial Registry built
// from any ---@class/---@field/---@enum tags encountered.
//
// Grounded on other_examples/3e02ec9e_justjake-go-scripting__annotation-annotate.go.go's
// Visit-then-ParseComment shape, adapted from walking a Go AST's comment
// groups to a flat line scan (this module has no Go-AST equivalent to
// walk; the raw AST contract in internal/rawast only promises statement
// start lines, so per-line scanning over source text is the simpler and
// more robust extraction surface).
func FromSource(source string) (*AnnotationIndex, *types.Registry) {
	idx := NewAnnotationIndex()
	registry := types.NewRegistry()

	lines := strings.Split(source, "\n")

	var pendingAnnotations []Annotation
	var pendingClassHints []string
	var pendingGenerics []string
	var openClass *pendingClass

	flush := func(line int) {
		if len(pendingAnnotations) > 0 {
			idx.ByLine[line] = append(idx.ByLine[line], pendingAnnotations...)
			pendingAnnotations = nil
		}
		if len(pendingClassHints) > 0 {
			idx.ClassHints[line] = append(idx.ClassHints[line], pendingClassHints...)
			pendingClassHints = nil
		}
		if len(pendingGenerics) > 0 {
			idx.generics[line] = append(idx.generics[line], pendingGenerics...)
			pendingGenerics = nil
		}
	}

	for i, raw := range lines {
		lineNo := i + 1

		if m := tagLineRe.FindStringSubmatch(raw); m != nil {
			tag, rest := m[1], strings.TrimSpace(m[2])
			handleTag(tag, rest, &pendingAnnotations, &pendingClassHints, &pendingGenerics, &openClass, registry)
			continue
		}

		// Blank lines and non-tag comments never flush pending state
		// (spec.md §4.1 "Line attribution rule").
		if blankRe.MatchString(raw) || commentRe.MatchString(raw) {
			continue
		}

		// First non-blank, non-tag, non-comment line: adopt pending
		// state and close any open class block.
		flush(lineNo)
		openClass = nil
	}

	return idx, registry
}

func handleTag(tag, rest string, pendingAnnotations *[]Annotation, pendingClassHints *[]string, pendingGenerics *[]string, openClass **pendingClass, registry *types.Registry) {
	switch tag {
	case "type":
		typ, name := splitOptionalTrailingName(rest)
		kind, _ := ParseTypeExpr(typ)
		*pendingAnnotations = append(*pendingAnnotations, Annotation{
			Usage:         Type,
			Name:          name,
			AnnotatedType: types.AnnotatedType{Raw: typ, Kind: kind},
		})
	case "param":
		name, typ := splitLeadingName(rest)
		if name == "" {
			return // malformed: no param name, silently skipped
		}
		kind, _ := ParseTypeExpr(typ)
		*pendingAnnotations = append(*pendingAnnotations, Annotation{
			Usage:         Param,
			Name:          name,
			AnnotatedType: types.AnnotatedType{Raw: typ, Kind: kind},
		})
	case "return":
		typ, name := splitOptionalTrailingName(rest)
		kind, _ := ParseTypeExpr(typ)
		*pendingAnnotations = append(*pendingAnnotations, Annotation{
			Usage:         Return,
			Name:          name,
			AnnotatedType: types.AnnotatedType{Raw: typ, Kind: kind},
		})
	case "class":
		name, parent, exact := parseClassHeader(rest)
		if name == "" {
			return
		}
		class := types.NewClass(name)
		class.Parent = parent
		class.Exact = exact
		registry.Classes[name] = class
		*openClass = &pendingClass{class: class}
		*pendingClassHints = append(*pendingClassHints, name)
	case "field":
		if *openClass == nil {
			return // malformed: field outside a class block, silently skipped
		}
		name, typ := splitLeadingName(rest)
		if name == "" {
			return
		}
		kind, ok := ParseTypeExpr(typ)
		if !ok {
			kind = types.Unknown
		}
		(*openClass).class.AddField(name, kind)
	case "enum":
		name := strings.TrimSpace(rest)
		if name == "" {
			return
		}
		registry.Enums[name] = true
	case "generics":
		for _, part := range strings.Split(rest, ",") {
			name := strings.TrimSpace(part)
			if name != "" {
				*pendingGenerics = append(*pendingGenerics, name)
			}
		}
	default:
		// Unrecognized tag: silently ignored (spec.md §4.1 failure semantics).
	}
}

// splitLeadingName splits "NAME rest-of-type" into (name, rest).
func splitLeadingName(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t")
	if idx == -1 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

// splitOptionalTrailingName splits "TYPE NAME?" into (type, name) for
// ---@type/---@return tags, where the optional name follows the type.
// Text that already parses as a whole type expression (e.g.
// "fun(x: number): boolean") is returned unsplit. Otherwise the type
// expression may still contain spaces, so this splits on the LAST
// whitespace-separated token only when that token contains none of the
// grammar's special characters.
func splitOptionalTrailingName(s string) (string, string) {
	s = strings.TrimSpace(s)
	if _, ok := ParseTypeExpr(s); ok {
		return s, ""
	}
	lastSpace := strings.LastIndexAny(s, " \t")
	if lastSpace == -1 {
		return s, ""
	}
	candidate := s[lastSpace+1:]
	if looksLikeName(candidate) {
		return strings.TrimSpace(s[:lastSpace]), candidate
	}
	return s, ""
}

func looksLikeName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// parseClassHeader parses "NAME [: PARENT] [(exact)]" / "(exact) NAME [: PARENT]".
func parseClassHeader(s string) (name, parent string, exact bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(exact)") {
		exact = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "(exact)"))
	}
	if idx := strings.Index(s, "(exact)"); idx != -1 {
		exact = true
		s = strings.TrimSpace(s[:idx] + s[idx+len("(exact)"):])
	}
	if parts := strings.SplitN(s, ":", 2); len(parts) == 2 {
		name = strings.TrimSpace(parts[0])
		parent = strings.TrimSpace(parts[1])
	} else {
		name = strings.TrimSpace(s)
	}
	return name, parent, exact
}
