// Package headers holds the canonical security header list shared by every
// output of the tool: the patched vite config, the generated node server,
// the generated nginx config and the built-in serve command. Keeping one
// ordered list is what keeps the four outputs from drifting apart.
package headers

import "net/http"

// Entry is one header name/value pair. Order matters for emitted object key
// order in the generated artifacts, not for HTTP semantics.
type Entry struct {
	Name  string
	Value string
}

// CSP is the content security policy for a typical vite single page app:
// same-origin everything, inline styles allowed (vite injects them in dev
// and some css-in-js libraries require them), data: images for inlined
// assets, no plugins, no framing by other origins.
const CSP = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; object-src 'none'; base-uri 'self'; form-action 'self'; frame-ancestors 'self'; upgrade-insecure-requests"

// canonical is the fixed, ordered header list. Values are copied verbatim
// into every artifact; do not add per-artifact variants.
var canonical = []Entry{

	// Force HTTPS for a year, subdomains included, preload-list eligible.
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload"},

	// Allow framing only by the same origin. frame-ancestors in the CSP
	// below is the modern equivalent; this covers older browsers.
	{"X-Frame-Options", "SAMEORIGIN"},

	{"Content-Security-Policy", CSP},

	// Ensure the browser respects the declared content type strictly.
	// mitigate MIME-type sniffing attacks
	{"X-Content-Type-Options", "nosniff"},

	// Never leak the referring URL to anyone.
	{"Referrer-Policy", "no-referrer"},

	// No speculative DNS lookups for links on the page.
	{"X-DNS-Prefetch-Control", "off"},

	// Legacy IE: never offer "open" for downloads in the site's context.
	{"X-Download-Options", "noopen"},

	// No Flash/PDF cross-domain policy files.
	{"X-Permitted-Cross-Domain-Policies", "none"},

	// Disable the legacy XSS auditor; it enables exfiltration attacks on
	// browsers that still ship it. CSP is the actual protection.
	{"X-XSS-Protection", "0"},
}

// Canonical returns the fixed header list in emission order. The returned
// slice is a copy; callers may not mutate the canonical set.
func Canonical() []Entry {
	out := make([]Entry, len(canonical))
	copy(out, canonical)
	return out
}

// Names returns just the header names, in canonical order.
func Names() []string {
	names := make([]string, len(canonical))
	for i, e := range canonical {
		names[i] = e.Name
	}
	return names
}

// Apply sets every canonical entry on h, overwriting existing values. The
// serve command applies these to every response; the additive-only rule of
// the config patcher does not apply here, the Go server is the authority
// for its own responses.
func Apply(h http.Header) {
	for _, e := range canonical {
		h.Set(e.Name, e.Value)
	}
}
