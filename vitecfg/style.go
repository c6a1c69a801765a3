package vitecfg

import (
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"github.com/caasmo/vitesec/headers"
)

// style captures the formatting conventions of the source file so that
// synthesized nodes blend in. Nothing here ever rewrites existing text.
type style struct {
	quote  byte   // preferred string quote, '\'' or '"'
	indent string // one indentation unit
}

// detectStyle infers quote preference from the existing string literals
// (ties go to single quotes, the prevailing vite convention) and the indent
// unit from the first indented line.
func detectStyle(src string, toks []token) style {
	st := style{quote: '\'', indent: "  "}

	single, double := 0, 0
	for _, t := range toks {
		if t.tt != js.StringToken || t.text == "" {
			continue
		}
		switch t.text[0] {
		case '\'':
			single++
		case '"':
			double++
		}
	}
	if double > single {
		st.quote = '"'
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		lead := line[:len(line)-len(trimmed)]
		if lead[0] == '\t' {
			st.indent = "\t"
		} else {
			st.indent = lead
		}
		break
	}
	return st
}

// quoteString renders s as a string literal in the preferred quote style,
// switching to the other quote when that avoids escaping (the CSP value
// contains single quotes, for instance).
func (st style) quoteString(s string) string {
	q := st.quote
	if strings.IndexByte(s, q) >= 0 {
		other := byte('"')
		if q == '"' {
			other = '\''
		}
		if strings.IndexByte(s, other) < 0 {
			q = other
		}
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == q || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
	return b.String()
}

// headerProp renders one canonical entry as an object property. Header names
// contain dashes, so the key is always a string literal.
func (st style) headerProp(e headers.Entry) string {
	return st.quoteString(e.Name) + ": " + st.quoteString(e.Value)
}

// headersBlock renders a complete `headers: {...}` property. base is the
// indentation of the line the property starts on; inline collapses the whole
// block onto one line for insertion into single-line objects.
func (st style) headersBlock(entries []headers.Entry, base string, inline bool) string {
	if inline {
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = st.headerProp(e)
		}
		return "headers: { " + strings.Join(parts, ", ") + " }"
	}

	var b strings.Builder
	b.WriteString("headers: {\n")
	inner := base + st.indent
	for _, e := range entries {
		b.WriteString(inner)
		b.WriteString(st.headerProp(e))
		b.WriteString(",\n")
	}
	b.WriteString(base)
	b.WriteString("}")
	return b.String()
}

// sectionBlock renders a complete `server: { headers: {...} }` (or preview)
// property carrying every canonical entry.
func (st style) sectionBlock(name string, entries []headers.Entry, base string, inline bool) string {
	if inline {
		return name + ": { " + st.headersBlock(entries, "", true) + " }"
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": {\n")
	inner := base + st.indent
	b.WriteString(inner)
	b.WriteString(st.headersBlock(entries, inner, false))
	b.WriteString(",\n")
	b.WriteString(base)
	b.WriteString("}")
	return b.String()
}
