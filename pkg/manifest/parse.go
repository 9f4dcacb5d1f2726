package manifest

import (
	"encoding/json"
	"fmt"
)

// Parse decodes manifest bytes into a fresh Manifest. Every call returns a
// new value; callers must not assume identity or equality across retrievals
// of the same document. An empty payload is a parse failure, matching the
// treatment of an empty local copy of a fetched manifest.
func Parse(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("manifest payload is empty")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
