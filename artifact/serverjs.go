// Package artifact emits the deployment companions of the patched vite
// config: a production node static server, an nginx reverse proxy config and
// an additive package.json patch. Every generator takes the canonical header
// list as an explicit parameter so the artifacts cannot drift from the
// config patcher; a shared test renders all of them against the list.
package artifact

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/caasmo/vitesec/headers"
)

// DefaultPort is the port the generated node server binds when PORT is not
// set, and the upstream port the nginx config proxies to.
const DefaultPort = 4173

const serverJSTemplate = `// Generated by vitesec. Serves the production build with security headers.
const express = require('express')
const path = require('path')

const app = express()
const port = process.env.PORT || {{.Port}}
const root = path.join(__dirname, 'dist')

const securityHeaders = {
{{- range .Entries}}
  {{.Name}}: {{.Value}},
{{- end}}
}

app.use((req, res, next) => {
  for (const [name, value] of Object.entries(securityHeaders)) {
    res.setHeader(name, value)
  }
  next()
})

app.use(express.static(root))

// single page app fallback
app.get('*', (req, res) => {
  res.sendFile(path.join(root, 'index.html'))
})

app.listen(port, () => {
  console.log('serving ' + root + ' on port ' + port)
})
`

var serverJS = template.Must(template.New("serverjs").Parse(serverJSTemplate))

type jsEntry struct {
	Name  string // quoted javascript string literal
	Value string
}

// ServerJS renders the production static-file server. Port is the fallback
// port baked into the file; the PORT environment variable wins at runtime.
func ServerJS(entries []headers.Entry, port int) (string, error) {
	if port <= 0 {
		port = DefaultPort
	}

	data := struct {
		Port    int
		Entries []jsEntry
	}{Port: port}
	for _, e := range entries {
		data.Entries = append(data.Entries, jsEntry{
			Name:  jsString(e.Name),
			Value: jsString(e.Value),
		})
	}

	var buf bytes.Buffer
	if err := serverJS.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("artifact: failed to render server.js: %w", err)
	}
	return buf.String(), nil
}

// jsString renders s as a javascript string literal, preferring single
// quotes and switching to double quotes when the value itself contains them
// (the CSP does).
func jsString(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return "'" + strings.ReplaceAll(s, `\`, `\\`) + "'"
	}
	if !strings.ContainsRune(s, '"') {
		return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
	}
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(escaped, "'", `\'`) + "'"
}
