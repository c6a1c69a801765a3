// Package vitecfg rewrites a vite configuration source file so that the
// `server` and `preview` sections carry the canonical security headers. The
// transformation is additive only: existing properties, values, comments and
// formatting are never altered, new properties are appended after existing
// ones, and a second run over already patched output changes nothing.
//
// Matching is best effort by identifier name. A `defineConfig` imported from
// an unrelated module also matches, and a configuration built through a
// factory function argument (`defineConfig(() => ({...}))`), a variable, or
// a spread is left alone because there is no object literal to edit safely.
package vitecfg

import (
	"github.com/caasmo/vitesec/headers"
)

// FactoryName is the vite configuration builder the patcher recognizes.
// Matching is by identifier name only, not import provenance.
const FactoryName = "defineConfig"

// sectionNames are patched in this fixed order.
var sectionNames = [2]string{"server", "preview"}

// Result describes one patch run.
type Result struct {
	// Text is the output source. Equal to the input when nothing applied.
	Text string

	// Found reports that a defineConfig call with an object literal
	// argument was located. False means the file is not a recognizable
	// vite config and Text is the input, byte for byte.
	Found bool

	// Changed reports that Text differs from the input.
	Changed bool

	// Skipped lists sections whose existing value is not an object literal
	// (a spread, a variable, a getter) and which were therefore left alone.
	Skipped []string
}

// Patch inserts the canonical security headers into the server and preview
// sections of the first defineConfig call in src. The only error condition
// is unparseable input, reported as *ParseError; every other outcome is a
// no-op described by the Result.
func Patch(src string) (Result, error) {
	if perr := validate(src); perr != nil {
		return Result{}, perr
	}

	toks, comments, err := lexAll(src)
	if err != nil {
		// esbuild accepted the file but our token scan did not keep up
		// (an exotic construct outside the structural grammar). Editing
		// blind would risk corrupting the file, so leave it alone.
		return Result{Text: src}, nil
	}

	argOpen, ok := findFactoryCall(toks, FactoryName)
	if !ok {
		return Result{Text: src}, nil
	}

	root, err := parseObject(toks, argOpen)
	if err != nil {
		return Result{Text: src}, nil
	}

	st := detectStyle(src, toks)
	entries := headers.Canonical()

	var edits []edit
	var skipped []string
	var missing []string // sections absent from the root object

	for _, name := range sectionNames {
		prop := root.find(name)
		if prop == nil {
			missing = append(missing, name)
			continue
		}
		if prop.value == nil {
			skipped = append(skipped, name)
			continue
		}
		edits = append(edits, mergeSection(src, toks, comments, prop.value, st, entries, &skipped, name)...)
	}

	if len(missing) > 0 {
		names := missing
		edits = append(edits, appendProps(src, toks, comments, root, st, func(base string, inline bool) []string {
			out := make([]string, len(names))
			for i, n := range names {
				out[i] = st.sectionBlock(n, entries, base, inline)
			}
			return out
		})...)
	}

	if len(edits) == 0 {
		return Result{Text: src, Found: true, Skipped: skipped}, nil
	}
	return Result{
		Text:    applyEdits(src, edits),
		Found:   true,
		Changed: true,
		Skipped: skipped,
	}, nil
}

// mergeSection plans the edits for one existing section object: create its
// headers map when absent, otherwise append only the canonical entries the
// user has not set.
func mergeSection(src string, toks []token, comments []span, section *objectLit, st style, entries []headers.Entry, skipped *[]string, name string) []edit {
	hdr := section.find("headers")
	if hdr == nil {
		return appendProps(src, toks, comments, section, st, func(base string, inline bool) []string {
			return []string{st.headersBlock(entries, base, inline)}
		})
	}
	if hdr.value == nil {
		*skipped = append(*skipped, name)
		return nil
	}

	var absent []headers.Entry
	for _, e := range entries {
		if hdr.value.find(e.Name) == nil {
			absent = append(absent, e)
		}
	}
	if len(absent) == 0 {
		return nil
	}

	return appendProps(src, toks, comments, hdr.value, st, func(base string, inline bool) []string {
		out := make([]string, len(absent))
		for i, e := range absent {
			out[i] = st.headerProp(e)
		}
		return out
	})
}

// findFactoryCall returns the token index of the object literal's opening
// brace for the first call to name whose first argument is an object
// literal. "First" is first in source order, which for a call expression is
// the pre-order position of its callee. Member accesses (`vite.defineConfig`)
// and function declarations that happen to reuse the name are not calls to a
// bare identifier and are skipped.
func findFactoryCall(toks []token, name string) (int, bool) {
	for i := range toks {
		t := toks[i]
		if t.text != name || !identLike(t) {
			continue
		}
		if i > 0 {
			prev := toks[i-1]
			if prev.text == "." || prev.text == "function" || prev.text == "class" {
				continue
			}
		}

		j := i + 1
		if j < len(toks) && toks[j].text == "<" {
			// Skip typescript type arguments: defineConfig<UserConfig>({...}).
			depth := 0
			for ; j < len(toks); j++ {
				switch toks[j].text {
				case "<":
					depth++
				case ">":
					depth--
				case "(", ")", ";", "{", "}":
					depth = -1
				}
				if depth <= 0 {
					break
				}
			}
			if j >= len(toks) || depth != 0 {
				continue
			}
			j++
		}

		if j >= len(toks) || toks[j].text != "(" {
			continue
		}
		k := j + 1
		if k >= len(toks) || toks[k].text != "{" {
			// Located the factory call, but its argument is not an object
			// literal; leave the file alone rather than guess at structure.
			return 0, false
		}
		return k, true
	}
	return 0, false
}
