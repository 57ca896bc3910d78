package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andybalholm/brotli"
)

// flushWriter is the compressor contract the entry writer needs: Flush
// must emit all pending output so that the bytes written so far form a
// self-contained, independently decodable prefix of the stream.
// brotli.Writer satisfies this (Flush ends a metadata block at a byte
// boundary).
type flushWriter interface {
	io.WriteCloser
	Flush() error
}

// entryWriter appends tar entries through a brotli compressor into a
// single output file and reports the exact compressed length produced
// so far. Every position returned by Measure lands on a compression
// frame boundary, so any measured position is a safe place to cut the
// file later.
type entryWriter struct {
	file       *os.File
	compressor flushWriter
	archive    *tar.Writer
}

func newEntryWriter(file *os.File, quality, window int) *entryWriter {
	compressor := brotli.NewWriterOptions(file, brotli.WriterOptions{
		Quality: quality,
		LGWin:   window,
	})
	return &entryWriter{
		file:       file,
		compressor: compressor,
		archive:    tar.NewWriter(compressor),
	}
}

// Measure flushes the current entry's block padding and all pending
// compressor output, then reports the output file length. The returned
// position always ends a brotli metadata block.
func (w *entryWriter) Measure() (int64, error) {
	if err := w.archive.Flush(); err != nil {
		return 0, fmt.Errorf("flushing archive: %w", err)
	}
	if err := w.compressor.Flush(); err != nil {
		return 0, fmt.Errorf("flushing compressor: %w", err)
	}
	position, err := w.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("reading output position: %w", err)
	}
	return position, nil
}

// AppendFile writes one file from disk as one complete archive entry.
func (w *entryWriter) AppendFile(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", path, err)
	}

	// Deterministic mode keeps only the executable bit from the source
	// file's permissions.
	mode := int64(0o644)
	if info.Mode()&0o111 != 0 {
		mode = 0o755
	}
	if err := w.AppendData(name, content, mode); err != nil {
		return fmt.Errorf("adding %s to archive: %w", path, err)
	}
	return nil
}

// AppendData writes one complete entry (header, content, padding) with
// deterministic metadata: no mtime, no owner or group, so identical
// inputs produce identical headers.
func (w *entryWriter) AppendData(name string, content []byte, mode int64) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     int64(len(content)),
		Mode:     mode,
		ModTime:  time.Unix(0, 0),
		Format:   tar.FormatGNU,
	}
	if err := w.archive.WriteHeader(header); err != nil {
		return err
	}
	_, err := w.archive.Write(content)
	return err
}

// Close finishes the archive normally: the tar end-of-archive marker
// followed by the compressor's terminating block. Only valid on the
// non-truncated path; a truncated run abandons both writers instead.
func (w *entryWriter) Close() error {
	if err := w.archive.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := w.compressor.Close(); err != nil {
		return fmt.Errorf("closing compressor: %w", err)
	}
	return nil
}
