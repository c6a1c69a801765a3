package artifact

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestPatchManifestAddsMissingFields(t *testing.T) {
	in := `{
  "name": "my-app",
  "scripts": {
    "build": "vite build"
  }
}`
	out, changed, err := PatchManifest([]byte(in))
	if err != nil {
		t.Fatalf("PatchManifest: %v", err)
	}
	if !changed {
		t.Fatal("expected changes")
	}

	doc := string(out)
	if got := gjson.Get(doc, "scripts.serve:prod").String(); got != "node server.js" {
		t.Errorf("serve:prod script = %q", got)
	}
	if got := gjson.Get(doc, "dependencies.express").String(); got != "^4.19.2" {
		t.Errorf("express dependency = %q", got)
	}
	if got := gjson.Get(doc, "scripts.build").String(); got != "vite build" {
		t.Errorf("existing script disturbed: %q", got)
	}
	if !strings.Contains(doc, `"name": "my-app"`) {
		t.Error("untouched formatting was rewritten")
	}
}

func TestPatchManifestNeverOverwrites(t *testing.T) {
	in := `{
  "scripts": { "serve:prod": "my-own-server" },
  "dependencies": { "express": "4.0.0" }
}`
	out, changed, err := PatchManifest([]byte(in))
	if err != nil {
		t.Fatalf("PatchManifest: %v", err)
	}
	if changed {
		t.Error("changed reported for a fully provisioned manifest")
	}
	if string(out) != in {
		t.Errorf("manifest altered:\n%s", out)
	}
}

func TestPatchManifestIdempotent(t *testing.T) {
	once, changed, err := PatchManifest([]byte(`{"name":"app"}`))
	if err != nil || !changed {
		t.Fatalf("first pass: changed=%v err=%v", changed, err)
	}
	twice, changed, err := PatchManifest(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if changed || string(twice) != string(once) {
		t.Errorf("second pass not a no-op:\n%s\nvs\n%s", once, twice)
	}
}

func TestPatchManifestInvalidJSON(t *testing.T) {
	_, _, err := PatchManifest([]byte(`{"scripts": `))
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
}
