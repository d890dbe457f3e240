package annotation

import (
	"strings"
	"unicode"

	"github.com/typua-lang/typua/internal/types"
)

// ParseTypeExpr parses a ---@ tag-type expression (spec.md §4.1's
// "Tag-type grammar") and returns the resulting Type. It returns
// (nil, false) for the bare "any" keyword (the only case that signals
// "do not enforce") and for any malformed expression — callers must
// treat both the same way: store raw text, leave Kind nil. Grounded on
// the recursive-descent-over-a-string shape of
// other_examples/3e02ec9e_justjake-go-scripting__annotation-annotate.go.go's
// tag parsing, adapted from Go-expression literals to this tag grammar.
func ParseTypeExpr(raw string) (types.Type, bool) {
	if strings.TrimSpace(raw) == "any" {
		return nil, false
	}
	p := &typeParser{src: []rune(raw)}
	t, err := p.parseUnion()
	if err != nil {
		return nil, false
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, false // trailing garbage: malformed
	}
	return t, true
}

type typeParser struct {
	src []rune
	pos int
}

type parseErr struct{ msg string }

func (e *parseErr) Error() string { return e.msg }

func fail(msg string) error { return &parseErr{msg} }

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) at(s string) bool {
	p.skipSpace()
	rs := []rune(s)
	if p.pos+len(rs) > len(p.src) {
		return false
	}
	for i, r := range rs {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	return true
}

func (p *typeParser) consume(s string) bool {
	if !p.at(s) {
		return false
	}
	p.pos += len([]rune(s))
	return true
}

func (p *typeParser) expect(s string) error {
	if !p.consume(s) {
		return fail("expected " + s)
	}
	return nil
}

// parseUnion = parsePostfix (| parsePostfix)*
func (p *typeParser) parseUnion() (types.Type, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	items := []types.Type{first}
	for p.consume("|") {
		next, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return types.NewUnion(items...), nil
}

// parsePostfix = parseAtom ("[]" | "?" | "<" typeList ">")*
func (p *typeParser) parsePostfix() (types.Type, error) {
	t, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consume("[]"):
			t = types.ArrayOf(t)
		case p.consume("?"):
			t = types.Optional(t)
		case p.consume("<"):
			args, err := p.parseTypeList(">")
			if err != nil {
				return nil, err
			}
			if err := p.expect(">"); err != nil {
				return nil, err
			}
			t = types.Applied{Base: t, Args: args}
		default:
			return t, nil
		}
	}
}

func (p *typeParser) parseTypeList(end string) ([]types.Type, error) {
	var out []types.Type
	for {
		p.skipSpace()
		if p.at(end) {
			break
		}
		t, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if !p.consume(",") {
			break
		}
	}
	return out, nil
}

func (p *typeParser) parseAtom() (types.Type, error) {
	p.skipSpace()
	switch p.peek() {
	case '"', '\'':
		return p.parseStringLiteral()
	case '(':
		p.pos++
		t, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return t, nil
	case '.':
		if p.consume("...") {
			// bare "..." used inside a fun(...) tail position; treat as Any.
			return types.Any, nil
		}
	}
	ident, ok := p.parseIdentifier()
	if !ok {
		return nil, fail("expected a type")
	}
	if ident == "fun" || ident == "function" {
		if p.at("(") {
			return p.parseFunc()
		}
		return types.Func{Params: types.VarArgParams(nil, types.Any), Returns: types.VarArgParams(nil, types.Any)}, nil
	}
	return atomicNameToType(ident), nil
}

func atomicNameToType(name string) types.Type {
	switch strings.ToLower(name) {
	case "nil":
		return types.Nil
	case "boolean", "bool":
		return types.Boolean
	case "string":
		return types.String
	case "number":
		return types.Number
	case "integer", "int":
		return types.Integer
	case "table":
		return types.TableMap{Key: types.Unknown, Value: types.Unknown}
	case "thread":
		return types.Thread
	case "userdata":
		return types.UserData
	case "lightuserdata":
		return types.LightUserData
	case "any":
		return types.Any
	default:
		return types.Custom{Name: name}
	}
}

func (p *typeParser) parseStringLiteral() (types.Type, error) {
	quote := p.src[p.pos]
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] != quote {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, fail("unterminated string literal")
	}
	p.pos++ // closing quote
	return types.String, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func (p *typeParser) parseIdentifier() (string, bool) {
	p.skipSpace()
	start := p.pos
	if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
		return "", false
	}
	p.pos++
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos]), true
}

// parseFunc parses "fun(p1: T1, ...[, ...T]): R1[, R2...]" after the
// leading "fun"/"function" keyword has already been consumed.
func (p *typeParser) parseFunc() (types.Type, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var fixed []types.Type
	variadic := false
	var tail types.Type
	p.skipSpace()
	if !p.at(")") {
		for {
			p.skipSpace()
			if p.consume("...") {
				t, err := p.parseUnion()
				if err != nil {
					return nil, err
				}
				tail = t
				variadic = true
				break
			}
			t, err := p.parseParamEntry()
			if err != nil {
				return nil, err
			}
			fixed = append(fixed, t)
			if !p.consume(",") {
				break
			}
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	params := types.FixedParams(fixed...)
	if variadic {
		params = types.VarArgParams(fixed, tail)
	}

	var returns []types.Type
	if p.consume(":") {
		rs, err := p.parseReturnList()
		if err != nil {
			return nil, err
		}
		returns = rs
	}
	return types.Func{Params: params, Returns: types.FixedParams(returns...)}, nil
}

// parseParamEntry parses "[NAME:] TYPE", tolerating a bare type with no
// parameter name.
func (p *typeParser) parseParamEntry() (types.Type, error) {
	checkpoint := p.pos
	if ident, ok := p.parseIdentifier(); ok {
		if p.consume(":") {
			return p.parseUnion()
		}
		// Not "name:", so the identifier itself was the type; rewind
		// and reparse as a full postfix/union expression (it may carry
		// suffixes like "T[]" or "T|nil").
		_ = ident
		p.pos = checkpoint
	}
	return p.parseUnion()
}

func (p *typeParser) parseReturnList() ([]types.Type, error) {
	var out []types.Type
	for {
		t, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		p.skipSpace()
		// No result name is skipped here: the extractor strips a
		// trailing "---@return T NAME" name before calling this, so
		// commas only ever separate additional return types.
		if !p.consume(",") {
			break
		}
	}
	return out, nil
}
