package archive

import (
	"fmt"
	"slices"
	"unicode/utf16"
)

// NullString is a decoded engine string. Valid is false for a zero length prefix.
type NullString struct {
	String string
	Valid  bool

	// units holds the little-endian UTF-16 payload of a wide string that String cannot
	// represent exactly, e.g. one with an unpaired surrogate. Empty otherwise.
	units string
}

// NewString returns a valid NullString holding s.
func NewString(s string) NullString {
	return NullString{String: s, Valid: true}
}

// IsASCII reports whether every character of s is within the 7-bit range.
func IsASCII(s string) bool {
	for _, c := range s {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// ReadString decodes a length-prefixed string. A positive length counts single-byte
// characters, a negative one UTF-16 code units; both include the null terminator.
func (r *Reader) ReadString() (NullString, error) {
	start := r.pos
	length, err := r.ReadInt32()
	if err != nil {
		return NullString{}, err
	}

	switch {
	case length == 0:
		return NullString{}, nil

	case length > 0:
		data, err := r.next(int64(length), "string")
		if err != nil {
			r.pos = start
			return NullString{}, err
		}
		if data[len(data)-1] != 0 {
			r.pos = start
			return NullString{}, fmt.Errorf("%w: missing terminator at offset %d", ErrInvalidString, start)
		}
		// single-byte characters map 1:1 onto the first 256 code points
		runes := make([]rune, len(data)-1)
		for i, c := range data[:len(data)-1] {
			runes[i] = rune(c)
		}
		return NewString(string(runes)), nil

	default:
		if length == -1<<31 {
			r.pos = start
			return NullString{}, fmt.Errorf("%w: length %d at offset %d", ErrInvalidString, length, start)
		}
		units := int64(-length)
		data, err := r.next(units*2, "wide string")
		if err != nil {
			r.pos = start
			return NullString{}, err
		}
		u := make([]uint16, units)
		for i := range u {
			u[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
		}
		if u[len(u)-1] != 0 {
			r.pos = start
			return NullString{}, fmt.Errorf("%w: missing wide terminator at offset %d", ErrInvalidString, start)
		}
		ns := NewString(string(utf16.Decode(u[:len(u)-1])))
		if !slices.Equal(utf16.Encode([]rune(ns.String)), u[:len(u)-1]) {
			ns.units = string(data[:len(data)-2])
		}
		return ns, nil
	}
}

// WriteString encodes s. A null string is written as a zero length with no payload.
func (w *Writer) WriteString(s NullString) error {
	if !s.Valid {
		return w.WriteInt32(0)
	}

	if IsASCII(s.String) {
		if err := w.WriteInt32(int32(len(s.String) + 1)); err != nil {
			return err
		}
		if _, err := w.Write([]byte(s.String)); err != nil {
			return err
		}
		return w.WriteByte(0)
	}

	if s.units != "" && string(utf16.Decode(decodeUnits(s.units))) == s.String {
		// unchanged since decoding, write the original code units
		if err := w.WriteInt32(-int32(len(s.units)/2 + 1)); err != nil {
			return err
		}
		if _, err := w.Write([]byte(s.units)); err != nil {
			return err
		}
		_, err := w.Write([]byte{0, 0})
		return err
	}

	u := utf16.Encode([]rune(s.String))
	if err := w.WriteInt32(-int32(len(u) + 1)); err != nil {
		return err
	}
	data := make([]byte, 2*(len(u)+1))
	for i, c := range u {
		data[2*i] = byte(c)
		data[2*i+1] = byte(c >> 8)
	}
	_, err := w.Write(data)
	return err
}

// decodeUnits splits little-endian bytes into UTF-16 code units
func decodeUnits(data string) []uint16 {
	u := make([]uint16, len(data)/2)
	for i := range u {
		u[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return u
}
