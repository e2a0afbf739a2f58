package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader reads little-endian primitives from an in-memory byte slice.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader returns a Reader positioned at the start of data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// --------------------------------------------------------------------------
// Cursor
// --------------------------------------------------------------------------

// Pos returns the current read offset.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int64 {
	return int64(len(r.data)) - r.pos
}

// Size returns the total length of the underlying data.
func (r *Reader) Size() int64 {
	return int64(len(r.data))
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.pos + offset
	case io.SeekEnd:
		abs = int64(len(r.data)) + offset
	default:
		return r.pos, fmt.Errorf("%w: whence %d", ErrInvalidSeek, whence)
	}
	if abs < 0 || abs > int64(len(r.data)) {
		return r.pos, fmt.Errorf("%w: offset %d outside [0, %d]", ErrInvalidSeek, abs, len(r.data))
	}
	r.pos = abs
	return abs, nil
}

// next returns the next n bytes without copying and advances the cursor.
func (r *Reader) next(n int64, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d for %s", ErrStreamTruncated, n, what)
	}
	if r.Len() < n {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left",
			ErrStreamTruncated, what, n, r.pos, r.Len())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// --------------------------------------------------------------------------
// Raw bytes
// --------------------------------------------------------------------------

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.next(int64(n), "byte block")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Rest returns a copy of all unread bytes and moves the cursor to the end.
func (r *Reader) Rest() []byte {
	out := make([]byte, r.Len())
	copy(out, r.data[r.pos:])
	r.pos = int64(len(r.data))
	return out
}

// --------------------------------------------------------------------------
// Scalars
// --------------------------------------------------------------------------

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.next(1, "byte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4, "uint32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.next(8, "uint64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// Slice returns a copy of the bytes in [from, to).
func (r *Reader) Slice(from, to int64) ([]byte, error) {
	if from < 0 || to < from || to > int64(len(r.data)) {
		return nil, fmt.Errorf("%w: slice [%d, %d) outside [0, %d]", ErrInvalidSeek, from, to, len(r.data))
	}
	out := make([]byte, to-from)
	copy(out, r.data[from:to])
	return out, nil
}
