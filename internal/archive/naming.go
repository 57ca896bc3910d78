package archive

import "strings"

// EntryName converts an input path into the name its file is stored
// under inside the archive. A leading root marker is discarded so
// absolute paths become archive-relative, "." and empty segments are
// dropped, and ".." removes the previous segment (a silent no-op when
// nothing is left to remove, so a name can never escape upward).
// Normalizing an already-normalized name returns it unchanged.
func EntryName(path string) string {
	var parts []string
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".":
			// A leading empty segment is the root marker; interior
			// ones come from doubled separators. Both are dropped.
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "/")
}
