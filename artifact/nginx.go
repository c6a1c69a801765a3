package artifact

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/caasmo/vitesec/headers"
)

const nginxTemplate = `# Generated by vitesec. Reverse proxy in front of the production server.
server {
    listen 80;
    listen [::]:80;
    server_name _;

    # Same header set as the vite config and server.js; "always" applies
    # them to error responses too.
{{- range .Entries}}
    add_header {{.Name}} "{{.Value}}" always;
{{- end}}

    location / {
        proxy_pass http://127.0.0.1:{{.Port}};
        proxy_http_version 1.1;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
    }
}
`

var nginxConf = template.Must(template.New("nginx").Parse(nginxTemplate))

// NginxConf renders the reverse proxy configuration pointing at the node
// server on port.
func NginxConf(entries []headers.Entry, port int) (string, error) {
	if port <= 0 {
		port = DefaultPort
	}

	data := struct {
		Port    int
		Entries []headers.Entry
	}{Port: port}
	for _, e := range entries {
		data.Entries = append(data.Entries, headers.Entry{
			Name:  e.Name,
			Value: strings.ReplaceAll(e.Value, `"`, `\"`),
		})
	}

	var buf bytes.Buffer
	if err := nginxConf.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("artifact: failed to render nginx.conf: %w", err)
	}
	return buf.String(), nil
}
