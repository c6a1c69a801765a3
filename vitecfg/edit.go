package vitecfg

import (
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// edit is a single text splice: the bytes in [pos,end) are replaced by text.
// Insertions have pos == end, which is the only kind of edit the patcher
// produces except for expanding an empty object body. Everything outside the
// spliced ranges is carried over untouched.
type edit struct {
	pos, end int
	text     string
}

func applyEdits(src string, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].pos < edits[j].pos })

	var b strings.Builder
	b.Grow(len(src) + editsLen(edits))
	at := 0
	for _, e := range edits {
		if e.pos < at {
			// Overlapping edits indicate a planner bug; emitting the input
			// unchanged beats corrupting the user's config.
			return src
		}
		b.WriteString(src[at:e.pos])
		b.WriteString(e.text)
		at = e.end
	}
	b.WriteString(src[at:])
	return b.String()
}

func editsLen(edits []edit) int {
	n := 0
	for _, e := range edits {
		n += len(e.text)
	}
	return n
}

// renderFunc produces the properties to append, formatted for the target
// object: base is the indentation its lines start at, inline asks for a
// single-line rendering.
type renderFunc func(base string, inline bool) []string

// appendProps plans the edits that append rendered properties to the end of
// obj, preserving the object's own layout: multi-line objects grow new lines
// above the closing brace, single-line objects grow inline, and an empty
// body is expanded into an indented block. Existing properties, comments and
// separators are never moved.
func appendProps(src string, toks []token, comments []span, obj *objectLit, st style, render renderFunc) []edit {
	if len(obj.props) == 0 {
		return appendToEmpty(src, toks, comments, obj, st, render)
	}
	closePos := toks[obj.close].pos

	last := &obj.props[len(obj.props)-1]
	lastEnd := toks[last.last].end()
	trailing := toks[last.last+1].tt == js.CommaToken
	multiline := strings.Contains(src[toks[obj.open].pos:closePos], "\n")

	if multiline {
		if lineStart, ok := lineStartBefore(src, closePos); ok {
			propIndent := indentOfLine(src, toks[last.first].pos)
			renders := render(propIndent, false)

			var b strings.Builder
			for i, r := range renders {
				b.WriteString(propIndent)
				b.WriteString(r)
				if i < len(renders)-1 || trailing {
					b.WriteString(",")
				}
				b.WriteString("\n")
			}

			edits := []edit{{pos: lineStart, end: lineStart, text: b.String()}}
			if !trailing {
				edits = append(edits, edit{pos: lastEnd, end: lastEnd, text: ","})
			}
			return edits
		}
		// The closing brace shares a line with other content; fall through
		// to the inline form rather than re-layout the user's lines.
	}

	renders := render("", true)
	if trailing {
		commaEnd := toks[last.last+1].end()
		return []edit{{pos: commaEnd, end: commaEnd, text: " " + strings.Join(renders, ", ") + ","}}
	}
	return []edit{{pos: lastEnd, end: lastEnd, text: ", " + strings.Join(renders, ", ")}}
}

// appendToEmpty expands `{}` into an indented block, or tucks the rendered
// properties in front of the closing brace when the empty body carries a
// comment that must survive.
func appendToEmpty(src string, toks []token, comments []span, obj *objectLit, st style, render renderFunc) []edit {
	openEnd := toks[obj.open].end()
	closePos := toks[obj.close].pos

	if hasComment(comments, openEnd, closePos) {
		if lineStart, ok := lineStartBefore(src, closePos); ok && strings.Contains(src[openEnd:closePos], "\n") {
			propIndent := indentOfLine(src, toks[obj.open].pos) + st.indent
			var b strings.Builder
			for _, r := range render(propIndent, false) {
				b.WriteString(propIndent)
				b.WriteString(r)
				b.WriteString(",\n")
			}
			return []edit{{pos: lineStart, end: lineStart, text: b.String()}}
		}
		text := " " + strings.Join(render("", true), ", ") + " "
		return []edit{{pos: closePos, end: closePos, text: text}}
	}

	base := indentOfLine(src, toks[obj.open].pos)
	propIndent := base + st.indent
	var b strings.Builder
	b.WriteString("\n")
	for _, r := range render(propIndent, false) {
		b.WriteString(propIndent)
		b.WriteString(r)
		b.WriteString(",\n")
	}
	b.WriteString(base)
	return []edit{{pos: openEnd, end: closePos, text: b.String()}}
}

// lineStartBefore returns the offset of the start of the line containing
// pos, but only when everything before pos on that line is whitespace.
func lineStartBefore(src string, pos int) (int, bool) {
	p := pos
	for p > 0 && (src[p-1] == ' ' || src[p-1] == '\t') {
		p--
	}
	if p == 0 || src[p-1] == '\n' {
		return p, true
	}
	return 0, false
}

// indentOfLine returns the leading whitespace of the line containing pos.
func indentOfLine(src string, pos int) string {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}

func hasComment(comments []span, from, to int) bool {
	for _, c := range comments {
		if c.pos < to && c.end > from {
			return true
		}
	}
	return false
}
