package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// fileHandler serves the build output. Paths that do not map to a file fall
// back to index.html, which is what a single page application with
// client-side routing needs. Hashed assets get the long immutable cache
// header; the index itself must always revalidate so a deploy is picked up.
func fileHandler(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
		if name == "." || strings.HasPrefix(name, "..") {
			name = "index.html"
		}

		full := filepath.Join(root, name)
		if info, err := os.Stat(full); err != nil || info.IsDir() {
			full = filepath.Join(root, "index.html")
			name = "index.html"
		}

		f, err := os.Open(full)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if name == "index.html" {
			w.Header().Set("Cache-Control", "no-cache")
		} else if strings.HasPrefix(name, "assets"+string(filepath.Separator)) {
			// vite writes content-hashed filenames under assets/
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}

		// ServeContent rather than ServeFile: the fallback rewrites the
		// served file independently of the request path, and ServeFile
		// refuses paths containing "..".
		http.ServeContent(w, r, name, info.ModTime(), f)
	})
}
