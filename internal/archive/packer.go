package archive

import (
	"fmt"
	"io"
	"os"
)

// lastEmptyBlock is a brotli metadata block with the ISLAST and
// ISLASTEMPTY bits set (RFC 7932 section 9.2): the minimal legal way
// to terminate a brotli stream.
const lastEmptyBlock = 0b0000_0011

// Pack runs one archiving pass. It creates the output file (refusing
// to overwrite an existing one), writes the manifest entry, then
// appends the input files in order. Each append is bracketed by two
// boundary measurements; the first file whose after-append measurement
// exceeds the budget stops the run, and the archive is cut back to the
// boundary recorded before that file.
//
// Budget overflow is a normal outcome, reported through the Result.
// Every other failure aborts the run with no defined state for the
// partially written output.
func Pack(task Task, progress io.Writer) (*Result, error) {
	out, err := os.OpenFile(task.Output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	writer := newEntryWriter(out, task.Quality, task.Window)

	// The manifest goes in before any size check: it must survive even
	// when every input file is truncated away.
	manifest, err := manifestPayload(task.Files)
	if err != nil {
		return nil, err
	}
	if err := writer.AppendData(ManifestName, manifest, manifestMode); err != nil {
		return nil, fmt.Errorf("adding manifest to archive: %w", err)
	}

	result := &Result{Total: len(task.Files)}
	truncateAt := int64(-1)

	for _, file := range task.Files {
		before, err := writer.Measure()
		if err != nil {
			return nil, err
		}
		if err := writer.AppendFile(EntryName(file), file); err != nil {
			return nil, err
		}
		after, err := writer.Measure()
		if err != nil {
			return nil, err
		}

		if uint64(after) > task.MaxSize {
			if task.Verbose {
				fmt.Fprintf(progress, "%s does not fit. Archive would be %d bytes.\n", file, after)
			}
			// The first overflow is final: every later file would sit
			// after this one in the stream, so none can be tried in
			// its place.
			truncateAt = before
			break
		}

		result.Added++
		result.AddedFiles = append(result.AddedFiles, file)
		if task.Verbose {
			fmt.Fprintf(progress, "%s (used %d bytes)\n", file, after-before)
		}
	}

	if truncateAt < 0 {
		if err := writer.Close(); err != nil {
			return nil, err
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("closing output file: %w", err)
		}
		info, err := os.Stat(task.Output)
		if err != nil {
			return nil, fmt.Errorf("stat output file: %w", err)
		}
		result.Size = info.Size()
		return result, nil
	}

	// The tar and brotli writers are abandoned unclosed: their natural
	// terminators would land past the cut point and be discarded
	// anyway. Truncation removes the terminating metadata block every
	// brotli stream must end with, so the minimal replacement is
	// appended by hand. The tar end-of-archive marker (two zero-filled
	// blocks) is not reconstructed; tar readers treat its absence as
	// non-fatal, while a missing brotli terminator would make the
	// whole artifact undecodable.
	if err := out.Truncate(truncateAt); err != nil {
		return nil, fmt.Errorf("truncating archive: %w", err)
	}
	if _, err := out.Seek(0, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("seeking to end of archive: %w", err)
	}
	if _, err := out.Write([]byte{lastEmptyBlock}); err != nil {
		return nil, fmt.Errorf("writing archive terminator: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output file: %w", err)
	}

	result.Truncated = true
	result.Size = truncateAt + 1
	return result, nil
}
