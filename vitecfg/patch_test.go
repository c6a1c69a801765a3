package vitecfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/caasmo/vitesec/headers"
)

const minimalConfig = `export default defineConfig({})`

func TestPatchMinimalConfigComplete(t *testing.T) {
	res, err := Patch(minimalConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found || !res.Changed {
		t.Fatalf("expected found+changed, got %+v", res)
	}

	for _, section := range []string{"server: {", "preview: {"} {
		if !strings.Contains(res.Text, section) {
			t.Errorf("output missing %q:\n%s", section, res.Text)
		}
	}
	for _, e := range headers.Canonical() {
		if strings.Count(res.Text, e.Name) != 2 {
			t.Errorf("header %s should appear once per section:\n%s", e.Name, res.Text)
		}
	}
}

func TestPatchIdempotent(t *testing.T) {
	inputs := []struct {
		name string
		src  string
	}{
		{"minimal", minimalConfig},
		{"empty sections", "export default defineConfig({\n  server: {},\n  preview: {},\n})\n"},
		{"partial headers", `export default defineConfig({
  server: {
    headers: {
      'X-Frame-Options': 'DENY',
    },
  },
})
`},
	}

	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			once, err := Patch(tc.src)
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			twice, err := Patch(once.Text)
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if twice.Changed {
				t.Error("second pass reported changes")
			}
			if twice.Text != once.Text {
				t.Errorf("second pass altered output:\nfirst:\n%s\nsecond:\n%s", once.Text, twice.Text)
			}
		})
	}
}

func TestPatchNoOpOnIrrelevantInput(t *testing.T) {
	srcs := []struct {
		name string
		src  string
	}{
		{"no factory call", "const a = 1\nexport default { server: {} }\n"},
		{"member access only", "import vite from 'vite'\nexport default vite.defineConfig({})\n"},
		{"function declaration", "function defineConfig(c) { return c }\n"},
		{"non-literal argument", "export default defineConfig(makeConfig())\n"},
		{"factory argument", "export default defineConfig(() => ({ server: {} }))\n"},
		{"variable argument", "const cfg = { server: {} }\nexport default defineConfig(cfg)\n"},
	}

	for _, tc := range srcs {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Patch(tc.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Changed {
				t.Error("changed reported for irrelevant input")
			}
			if res.Text != tc.src {
				t.Errorf("output differs from input:\n%q\nvs\n%q", res.Text, tc.src)
			}
		})
	}
}

func TestPatchPreservesExistingValues(t *testing.T) {
	src := `import { defineConfig } from 'vite'

export default defineConfig({
  plugins: [],
  server: {
    port: 3000,
    headers: {
      'X-Frame-Options': 'DENY',
    },
  },
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Fatal("expected changes")
	}

	if !strings.Contains(res.Text, "'X-Frame-Options': 'DENY'") {
		t.Error("user value for X-Frame-Options was not preserved")
	}
	// The synthesized preview section carries the canonical value; the
	// server section must keep the user's.
	serverPart := res.Text[:strings.Index(res.Text, "preview:")]
	if strings.Contains(serverPart, "SAMEORIGIN") {
		t.Error("canonical X-Frame-Options was inserted next to the user's")
	}
	if !strings.Contains(res.Text, "port: 3000") {
		t.Error("unrelated server property was disturbed")
	}
	if !strings.Contains(res.Text, "plugins: []") {
		t.Error("unrelated top-level property was disturbed")
	}
	// The remaining eight canonical entries are appended to server.headers,
	// and preview gets all nine.
	for _, e := range headers.Canonical() {
		if got := strings.Count(res.Text, quoted(e.Name)); got != 2 {
			t.Errorf("header %s: appears %d times, want 2", e.Name, got)
		}
	}
}

func quoted(s string) string { return "'" + s + "'" }

func TestPatchParseError(t *testing.T) {
	res, err := Patch("export default defineConfig({ server: {\n")
	if err == nil {
		t.Fatalf("expected ParseError, got result %+v", res)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Msg == "" {
		t.Error("ParseError carries no message")
	}
}

func TestPatchFirstCallSiteOnly(t *testing.T) {
	src := `const a = defineConfig({})
const b = defineConfig({})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Fatal("expected changes")
	}
	if !strings.Contains(res.Text, "const b = defineConfig({})") {
		t.Errorf("second call site was modified:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "server: {") {
		t.Errorf("first call site was not patched:\n%s", res.Text)
	}
}

func TestPatchSkipsNonObjectSections(t *testing.T) {
	src := `import base from './base'

export default defineConfig({
  server: base.server,
  preview: {},
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "server" {
		t.Fatalf("expected server to be skipped, got %v", res.Skipped)
	}
	if !strings.Contains(res.Text, "server: base.server,") {
		t.Error("non-object server section was modified")
	}
	if !strings.Contains(res.Text, "preview: {") || !strings.Contains(res.Text, "Strict-Transport-Security") {
		t.Errorf("editable preview section was not patched:\n%s", res.Text)
	}
}

func TestPatchSkipsNonObjectHeaders(t *testing.T) {
	src := `export default defineConfig({
  server: {
    headers: sharedHeaders,
  },
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "headers: sharedHeaders,") {
		t.Error("non-object headers map was modified")
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "server" {
		t.Errorf("expected server skipped, got %v", res.Skipped)
	}
	// preview is still synthesized in full
	if !strings.Contains(res.Text, "preview: {") {
		t.Errorf("preview was not added:\n%s", res.Text)
	}
}

func TestPatchTypescriptDialect(t *testing.T) {
	src := `import { defineConfig, type UserConfig } from 'vite'

const port: number = 5173

export default defineConfig({
  server: { port },
} satisfies UserConfig)
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("typescript config was not recognized")
	}
	if !strings.Contains(res.Text, "const port: number = 5173") {
		t.Error("typescript annotation was disturbed")
	}
	if !strings.Contains(res.Text, "Strict-Transport-Security") {
		t.Errorf("headers were not inserted:\n%s", res.Text)
	}
}

func TestPatchQuoteStyleFollowsFile(t *testing.T) {
	src := `import { defineConfig } from "vite"
import react from "@vitejs/plugin-react"

export default defineConfig({
  plugins: [react()],
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, `"X-Frame-Options": "SAMEORIGIN"`) {
		t.Errorf("new properties did not adopt the file's double quotes:\n%s", res.Text)
	}
	if strings.Contains(res.Text, `'X-Frame-Options'`) {
		t.Errorf("single quotes leaked into a double-quoted file:\n%s", res.Text)
	}
}

func TestPatchStringKeyedSectionRecognized(t *testing.T) {
	src := `export default defineConfig({
  'server': {
    headers: {
      "X-Frame-Options": "DENY",
    },
  },
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(res.Text, "server") != 1 {
		t.Errorf("string-keyed section was not recognized, a duplicate was added:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, `"X-Frame-Options": "DENY"`) {
		t.Error("existing string-keyed header was not preserved")
	}
	if got := strings.Count(res.Text, "Strict-Transport-Security"); got != 2 {
		t.Errorf("Strict-Transport-Security should appear in both sections, got %d", got)
	}
}

func TestPatchAdditiveOnly(t *testing.T) {
	src := `// deployment config
import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
  build: {
    outDir: 'dist',
    sourcemap: false, // keep bundles small
  },
})
`
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range strings.Split(src, "\n") {
		if !strings.Contains(res.Text, line) {
			t.Errorf("original line lost: %q", line)
		}
	}
}

func TestPatchRegexAndTemplateLiterals(t *testing.T) {
	src := "const re = /\\{+/g\nconst tpl = `port ${1 + 2} }`\nexport default defineConfig({})\n"
	res, err := Patch(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("config after regex/template literals was not patched:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "const re = /\\{+/g") {
		t.Error("regex literal was disturbed")
	}
}
