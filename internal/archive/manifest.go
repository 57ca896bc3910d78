package archive

import (
	"encoding/json"
	"fmt"
)

// ManifestName is the reserved name of the archive's first entry.
const ManifestName = "partial-tar-brotli-manifest.json"

const manifestMode = 0o644

// manifestPayload encodes the original, unnormalized input paths in
// call order as a JSON array. The manifest records what was asked for,
// not what fit, so a truncated archive still names every requested
// file.
func manifestPayload(files []string) ([]byte, error) {
	if files == nil {
		files = []string{}
	}
	payload, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return payload, nil
}
