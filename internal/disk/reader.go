// Package disk wraps the raw file handle the pipeline reads the $MFT image
// from.
package disk

import (
	"fmt"
	"io"
	"os"
)

// Reader is a thin, sequential-access wrapper over an open file.
type Reader struct {
	file *os.File
	size int64
}

// Open opens path for reading and stats its size up front.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		size, err = file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to determine input size: %w", err)
		}
		file.Seek(0, io.SeekStart)
	}

	return &Reader{file: file, size: size}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Size returns the input's byte length, as observed at Open time.
func (r *Reader) Size() int64 {
	return r.size
}

// Read wraps the underlying file's sequential Read.
func (r *Reader) Read(buf []byte) (int, error) {
	return r.file.Read(buf)
}
