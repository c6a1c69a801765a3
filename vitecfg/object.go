package vitecfg

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// The patcher only ever needs the shape of object literals: which keys exist
// in which form, and whether a value is itself a plain object literal. That
// closed set of property variants is modelled here; everything outside it
// (methods, getters, computed keys, spreads) is kept opaque and never edited.

type keyKind int

const (
	keyIdent keyKind = iota
	keyString
	keyNumber
	keyComputed
	keySpread
	keyOpaque
)

type property struct {
	kind keyKind
	name string // decoded key text for keyIdent and keyString

	// first and last are the token index range of the property, excluding
	// any trailing comma.
	first, last int

	// value is non-nil only when the property value is exactly an object
	// literal, not an expression that merely starts with one.
	value *objectLit
}

type objectLit struct {
	open, close int
	props       []property
}

// find returns the first property whose identifier or string-literal key
// equals name exactly. Computed keys never match, by design: a computed key
// that evaluates to a header name is treated as a distinct key.
func (o *objectLit) find(name string) *property {
	for i := range o.props {
		p := &o.props[i]
		if (p.kind == keyIdent || p.kind == keyString) && p.name == name {
			return p
		}
	}
	return nil
}

var errSyntax = errors.New("unexpected token structure")

// parseObject builds the property list of the object literal opening at
// toks[open]. Nested object values are parsed recursively; all other value
// expressions are skipped over by bracket counting.
func parseObject(toks []token, open int) (*objectLit, error) {
	obj := &objectLit{open: open, close: -1}
	i := open + 1
	for {
		if i >= len(toks) {
			return nil, errSyntax
		}
		t := toks[i]
		if t.tt == js.CloseBraceToken {
			obj.close = i
			return obj, nil
		}
		if t.tt == js.CommaToken {
			i++
			continue
		}

		p := property{first: i, kind: keyOpaque}
		switch {
		case t.tt == js.EllipsisToken:
			p.kind = keySpread
			end, err := skipValue(toks, i+1)
			if err != nil {
				return nil, err
			}
			p.last = end - 1
			obj.props = append(obj.props, p)
			i = end
			continue
		case t.tt == js.StringToken:
			p.kind = keyString
			p.name = unquote(t.text)
		case t.tt == js.NumericToken:
			p.kind = keyNumber
			p.name = t.text
		case t.tt == js.OpenBracketToken:
			p.kind = keyComputed
			after, err := skipBalanced(toks, i)
			if err != nil {
				return nil, err
			}
			i = after - 1 // leave i on the closing bracket
		case identLike(t):
			p.kind = keyIdent
			p.name = t.text
		default:
			// Generator star or anything else we do not model: consume the
			// whole property and keep it opaque.
			end, err := skipValue(toks, i)
			if err != nil {
				return nil, err
			}
			p.last = end - 1
			obj.props = append(obj.props, p)
			i = end
			continue
		}

		j := i + 1
		if j >= len(toks) {
			return nil, errSyntax
		}
		switch toks[j].tt {
		case js.ColonToken:
			valStart := j + 1
			if valStart >= len(toks) {
				return nil, errSyntax
			}
			var sub *objectLit
			if toks[valStart].tt == js.OpenBraceToken {
				o, err := parseObject(toks, valStart)
				if err != nil {
					return nil, err
				}
				sub = o
			}
			end, err := skipValue(toks, valStart)
			if err != nil {
				return nil, err
			}
			if sub != nil && end == sub.close+1 {
				p.value = sub
			}
			p.last = end - 1
			i = end
		case js.CommaToken, js.CloseBraceToken:
			// shorthand property
			p.last = i
			i = j
		default:
			// Method, async/getter/setter modifier, shorthand default or a
			// typescript construct: opaque, skip to the property boundary.
			p.kind = keyOpaque
			p.name = ""
			end, err := skipValue(toks, i)
			if err != nil {
				return nil, err
			}
			p.last = end - 1
			i = end
		}
		obj.props = append(obj.props, p)
	}
}

// skipValue advances from i to the token index of the comma or closing brace
// that terminates the current property at nesting depth zero. The terminator
// itself is not consumed.
func skipValue(toks []token, i int) (int, error) {
	depth := 0
	for k := i; k < len(toks); k++ {
		switch toks[k].tt {
		case js.OpenBraceToken, js.OpenParenToken, js.OpenBracketToken, js.TemplateStartToken:
			depth++
		case js.CloseParenToken, js.CloseBracketToken:
			if depth == 0 {
				return 0, errSyntax
			}
			depth--
		case js.CloseBraceToken:
			if depth == 0 {
				return k, nil
			}
			depth--
		case js.TemplateEndToken:
			if depth == 0 {
				return 0, errSyntax
			}
			depth--
		case js.CommaToken:
			if depth == 0 {
				return k, nil
			}
		}
	}
	return 0, errSyntax
}

// skipBalanced returns the index just past the closer matching the opener at
// toks[i].
func skipBalanced(toks []token, i int) (int, error) {
	depth := 0
	for k := i; k < len(toks); k++ {
		switch toks[k].tt {
		case js.OpenBraceToken, js.OpenParenToken, js.OpenBracketToken, js.TemplateStartToken:
			depth++
		case js.CloseBraceToken, js.CloseParenToken, js.CloseBracketToken, js.TemplateEndToken:
			depth--
			if depth == 0 {
				return k + 1, nil
			}
			if depth < 0 {
				return 0, errSyntax
			}
		}
	}
	return 0, errSyntax
}

// unquote strips the surrounding quotes of a string literal token and
// resolves backslash escapes. Unknown escapes keep the escaped character,
// matching how the engine would evaluate the literal.
func unquote(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(body) {
				if n, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if r, width, ok := unquoteUnicode(body[i:]); ok {
				b.WriteRune(r)
				i += width - 1
				continue
			}
			b.WriteByte('u')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// unquoteUnicode decodes a \uXXXX or \u{...} escape; s starts at the 'u'.
func unquoteUnicode(s string) (rune, int, bool) {
	if len(s) >= 2 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, false
		}
		n, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(n), end + 1, true
	}
	if len(s) < 5 {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(s[1:5], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(n), 5, true
}
