package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer writes little-endian primitives into a growable in-memory buffer.
// Writing at a position before the end overwrites existing bytes.
type Writer struct {
	buf []byte
	pos int64
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize returns an empty Writer with capacity preallocated.
func NewWriterSize(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// --------------------------------------------------------------------------
// Cursor
// --------------------------------------------------------------------------

// Pos returns the current write offset.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return int64(len(w.buf))
}

// Bytes returns the written data. The slice aliases the internal buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Seek implements io.Seeker. Seeking past the end is not allowed.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = w.pos + offset
	case io.SeekEnd:
		abs = int64(len(w.buf)) + offset
	default:
		return w.pos, fmt.Errorf("%w: whence %d", ErrInvalidSeek, whence)
	}
	if abs < 0 || abs > int64(len(w.buf)) {
		return w.pos, fmt.Errorf("%w: offset %d outside [0, %d]", ErrInvalidSeek, abs, len(w.buf))
	}
	w.pos = abs
	return abs, nil
}

// PatchInt32 overwrites the int32 at offset. The cursor does not move.
func (w *Writer) PatchInt32(offset int64, v int32) error {
	if offset < 0 || offset+4 > int64(len(w.buf)) {
		return fmt.Errorf("%w: patch at %d outside [0, %d]", ErrInvalidSeek, offset, len(w.buf))
	}
	binary.LittleEndian.PutUint32(w.buf[offset:offset+4], uint32(v))
	return nil
}

// --------------------------------------------------------------------------
// Raw bytes
// --------------------------------------------------------------------------

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	end := w.pos + int64(len(p))
	if end > int64(len(w.buf)) {
		if end > int64(cap(w.buf)) {
			grown := make([]byte, len(w.buf), max(end, int64(2*cap(w.buf))))
			copy(grown, w.buf)
			w.buf = grown
		}
		w.buf = w.buf[:end]
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

// --------------------------------------------------------------------------
// Scalars
// --------------------------------------------------------------------------

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

func (w *Writer) WriteUint64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}
