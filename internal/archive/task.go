// Package archive implements size-budgeted tar+brotli packing: input
// files are appended to a single compressed archive in order until the
// next file would push the artifact past a byte budget, at which point
// the archive is cut back to the last safe compression boundary and
// capped so it still decodes cleanly.
package archive

import "fmt"

// Task describes one packing job. Built once from CLI input and config,
// never mutated.
type Task struct {
	Files   []string // input paths, in the order they should be packed
	Output  string   // destination archive path; must not already exist
	MaxSize uint64   // hard budget in bytes for the final artifact
	Quality int      // brotli quality, 0-11
	Window  int      // brotli window size (log2), 10-24
	Verbose bool     // per-file progress lines on the progress writer
}

// Result reports what a completed run produced.
type Result struct {
	Added      int      // files fully written to the archive
	Total      int      // files requested
	AddedFiles []string // input paths actually consumed, in call order
	Truncated  bool     // archive was cut back to the last safe boundary
	Size       int64    // final artifact length in bytes
}

// Skipped returns how many trailing input files did not make it into
// the archive. Skipped files are always a contiguous suffix of the
// input order.
func (r *Result) Skipped() int {
	return r.Total - r.Added
}

// FormatSize formats bytes as human-readable.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
