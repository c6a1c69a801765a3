package vitecfg

import (
	"strings"
	"testing"

	"github.com/caasmo/vitesec/headers"
)

func TestDetectStyle(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		wantQuote  byte
		wantIndent string
	}{
		{"defaults on empty", "", '\'', "  "},
		{"single quote majority", "import a from 'a'\nimport b from 'b'\nimport c from \"c\"\n", '\'', "  "},
		{"double quote majority", "import a from \"a\"\nimport b from \"b\"\n", '"', "  "},
		{"four space indent", "x({\n    a: 1,\n})", '\'', "    "},
		{"tab indent", "x({\n\ta: 1,\n})", '\'', "\t"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, _, err := lexAll(tc.src)
			if err != nil {
				t.Fatalf("lexAll: %v", err)
			}
			st := detectStyle(tc.src, toks)
			if st.quote != tc.wantQuote {
				t.Errorf("quote = %c, want %c", st.quote, tc.wantQuote)
			}
			if st.indent != tc.wantIndent {
				t.Errorf("indent = %q, want %q", st.indent, tc.wantIndent)
			}
		})
	}
}

func TestQuoteStringAvoidsEscaping(t *testing.T) {
	st := style{quote: '\'', indent: "  "}

	if got := st.quoteString("plain"); got != "'plain'" {
		t.Errorf("got %s", got)
	}
	// The CSP value contains single quotes; the other quote avoids escapes.
	if got := st.quoteString(headers.CSP); !strings.HasPrefix(got, `"`) || strings.Contains(got, `\`) {
		t.Errorf("CSP value should switch to double quotes unescaped, got %s", got)
	}
	if got := st.quoteString(`both ' and "`); got != `'both \' and "'` {
		t.Errorf("mixed quotes: got %s", got)
	}
}

func TestSectionBlockShape(t *testing.T) {
	st := style{quote: '\'', indent: "  "}
	entries := headers.Canonical()

	block := st.sectionBlock("server", entries, "  ", false)
	if !strings.HasPrefix(block, "server: {\n") {
		t.Errorf("block does not open a section object: %q", block)
	}
	for _, e := range entries {
		if !strings.Contains(block, "'"+e.Name+"'") {
			t.Errorf("block missing %s", e.Name)
		}
	}
	if !strings.HasSuffix(block, "\n  }") {
		t.Errorf("block does not close at the section indent: %q", block)
	}

	inline := st.sectionBlock("preview", entries, "", true)
	if strings.Contains(inline, "\n") {
		t.Error("inline rendering contains newlines")
	}
}
