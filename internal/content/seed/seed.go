// Package seed carries the bundled default documents. They double as the
// first-run seed for the store and as the read fallback while a document is
// absent.
package seed

import (
	"embed"
	"encoding/json"

	"vitrina/internal/content/model"
)

//go:embed site.json products.json
var files embed.FS

// Document returns the embedded default for a key. ok is false for unknown
// keys; the embedded files themselves are compiled in and always readable.
func Document(key string) (json.RawMessage, bool) {
	if !model.ValidKey(key) {
		return nil, false
	}
	b, err := files.ReadFile(key + ".json")
	if err != nil {
		return nil, false
	}
	return json.RawMessage(b), true
}
