package docstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeed reads a json-server style db.json: one top-level array per
// resource.
func LoadSeed(path string) (map[string][]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data map[string][]Document
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	for resource := range data {
		if !isResource(resource) {
			return nil, fmt.Errorf("seed file: %w %q", ErrUnknownResource, resource)
		}
	}
	return data, nil
}
