// Package trace reads and writes the fixed-width binary access trace format
// every command in this module consumes: a flat file of 25-byte records, one
// per access, decoded with package access.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/IvanBrykalov/kosmo/access"
)

const readBufferSize = 1 << 20

// Reader streams Access records from a trace file in order.
type Reader struct {
	f    *os.File
	br   *bufio.Reader
	size int64
	read int64
}

// Open opens path for streaming. The caller must Close it when done.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("trace: stat %q: %w", path, err)
	}

	return &Reader{f: f, br: bufio.NewReaderSize(f, readBufferSize), size: info.Size()}, nil
}

// Size returns the trace file's total byte length, used to drive progress
// reporting over a full pass.
func (r *Reader) Size() int64 { return r.size }

// BytesRead returns how many bytes have been consumed so far.
func (r *Reader) BytesRead() int64 { return r.read }

// Next returns the next record, or io.EOF once the trace is exhausted. A
// short or malformed record returns a non-EOF error wrapping the underlying
// cause; callers needing a typed error kind should wrap that in turn (see
// mrc.InvalidTraceRecord).
func (r *Reader) Next() (access.Access, error) {
	var buf [access.EncodedSize]byte

	n, err := io.ReadFull(r.br, buf[:])
	r.read += int64(n)

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if n == 0 {
			return access.Access{}, io.EOF
		}
		return access.Access{}, fmt.Errorf("trace: truncated record: got %d of %d bytes: %w", n, access.EncodedSize, err)
	}
	if err != nil {
		return access.Access{}, fmt.Errorf("trace: read: %w", err)
	}

	a, err := access.Decode(buf[:])
	if err != nil {
		return access.Access{}, err
	}
	return a, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

// Writer appends Access records to a trace file; the tests use it to build
// trace fixtures.
type Writer struct {
	f  *os.File
	bw *bufio.Writer
}

// Create truncates (or creates) path for writing.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: create %q: %w", path, err)
	}
	return &Writer{f: f, bw: bufio.NewWriterSize(f, readBufferSize)}, nil
}

// Write appends a to the trace.
func (w *Writer) Write(a access.Access) error {
	return access.WriteTo(w.bw, a)
}

// Close flushes buffered output and releases the underlying file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("trace: flush: %w", err)
	}
	return w.f.Close()
}
