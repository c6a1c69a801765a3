package artifact

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// The manifest patch follows the same additive-only discipline as the config
// patcher: a script or dependency the user already defines is never touched,
// whatever its value.

const (
	serveScript   = "serve:prod"
	serveCommand  = "node server.js"
	expressDep    = "express"
	expressTarget = "^4.19.2"
)

var ErrManifestInvalid = errors.New("package.json is not valid JSON")

// PatchManifest adds the production serve script and the express dependency
// to a package.json document if they are absent. The document's formatting
// and key order are preserved for everything untouched. Returns the patched
// bytes and whether anything changed.
func PatchManifest(manifest []byte) ([]byte, bool, error) {
	if !gjson.ValidBytes(manifest) {
		return nil, false, ErrManifestInvalid
	}

	out := manifest
	changed := false

	if !gjson.GetBytes(out, "scripts.serve:prod").Exists() {
		patched, err := sjson.SetBytes(out, "scripts.serve:prod", serveCommand)
		if err != nil {
			return nil, false, fmt.Errorf("artifact: failed to add %s script: %w", serveScript, err)
		}
		out = patched
		changed = true
	}

	if !gjson.GetBytes(out, "dependencies.express").Exists() {
		patched, err := sjson.SetBytes(out, "dependencies.express", expressTarget)
		if err != nil {
			return nil, false, fmt.Errorf("artifact: failed to add %s dependency: %w", expressDep, err)
		}
		out = patched
		changed = true
	}

	return out, changed, nil
}
