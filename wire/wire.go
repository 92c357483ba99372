// Package wire implements the binary stream primitives used by the
// model persistence format: variable-length integers, fixed-width
// floats, and length-prefixed strings.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// Writer encodes primitive values onto an io.Writer.
type Writer struct {
	w       io.Writer
	scratch [binary.MaxVarintLen64]byte
}

// NewWriter returns a Writer that encodes onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Uvarint writes v as a variable-length unsigned integer.
func (w *Writer) Uvarint(v uint64) error {
	n := binary.PutUvarint(w.scratch[:], v)
	_, err := w.w.Write(w.scratch[:n])
	return err
}

// Varint writes v as a variable-length signed integer.
func (w *Writer) Varint(v int64) error {
	n := binary.PutVarint(w.scratch[:], v)
	_, err := w.w.Write(w.scratch[:n])
	return err
}

// Float64 writes the IEEE-754 bits of v as 8 little-endian bytes.
func (w *Writer) Float64(v float64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], math.Float64bits(v))
	_, err := w.w.Write(w.scratch[:8])
	return err
}

// String writes s as a uvarint length prefix followed by the raw bytes.
func (w *Writer) String(s string) error {
	if err := w.Uvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, s)
	return err
}

// Reader decodes values written by Writer.
//
// A read that consumes zero bytes at end of stream returns io.EOF; a
// read cut off partway through a value returns io.ErrUnexpectedEOF.
// Callers rely on this distinction to treat an empty stream as "no
// record" while rejecting truncated records.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader that decodes from r. If r is already a
// *Reader it is returned as-is, so a partially-consumed stream can be
// handed between decoding layers without losing buffered bytes.
func NewReader(r io.Reader) *Reader {
	if rr, ok := r.(*Reader); ok {
		return rr
	}
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// Read implements io.Reader over the buffered stream.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Uvarint reads a variable-length unsigned integer.
func (r *Reader) Uvarint() (uint64, error) {
	return binary.ReadUvarint(r.r)
}

// Varint reads a variable-length signed integer.
func (r *Reader) Varint() (int64, error) {
	return binary.ReadVarint(r.r)
}

// Float64 reads 8 little-endian bytes as an IEEE-754 float.
func (r *Reader) Float64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// String reads a uvarint length prefix followed by that many bytes.
func (r *Reader) String() (string, error) {
	n, err := r.Uvarint()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF {
			// the length prefix was already consumed, so running out
			// of bytes here is a truncation, not an empty stream
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return string(buf), nil
}
