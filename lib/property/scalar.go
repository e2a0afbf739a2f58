package property

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/dSav/lib/archive"
)

type number interface {
	uint8 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Scalar is a fixed-size numeric property payload.
type Scalar[T number] struct {
	V T
}

type (
	ByteValue   = Scalar[uint8]
	IntValue    = Scalar[int32]
	UInt32Value = Scalar[uint32]
	Int64Value  = Scalar[int64]
	UInt64Value = Scalar[uint64]
	FloatValue  = Scalar[float32]
	DoubleValue = Scalar[float64]
)

func (s *Scalar[T]) Clone() Value {
	return &Scalar[T]{V: s.V}
}

func (s *Scalar[T]) Decode(r *archive.Reader) error {
	var err error
	switch p := any(&s.V).(type) {
	case *uint8:
		*p, err = r.ReadByte()
	case *int32:
		*p, err = r.ReadInt32()
	case *uint32:
		*p, err = r.ReadUint32()
	case *int64:
		*p, err = r.ReadInt64()
	case *uint64:
		*p, err = r.ReadUint64()
	case *float32:
		*p, err = r.ReadFloat32()
	case *float64:
		*p, err = r.ReadFloat64()
	}
	return err
}

func (s *Scalar[T]) Encode(w *archive.Writer) error {
	switch v := any(s.V).(type) {
	case uint8:
		return w.WriteByte(v)
	case int32:
		return w.WriteInt32(v)
	case uint32:
		return w.WriteUint32(v)
	case int64:
		return w.WriteInt64(v)
	case uint64:
		return w.WriteUint64(v)
	case float32:
		return w.WriteFloat32(v)
	case float64:
		return w.WriteFloat64(v)
	}
	return nil
}

func (s *Scalar[T]) String() string {
	switch v := any(s.V).(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (s *Scalar[T]) Set(str string) error {
	str = strings.TrimSpace(str)
	var parsed any
	var err error
	switch any(s.V).(type) {
	case uint8:
		var v uint64
		v, err = strconv.ParseUint(str, 10, 8)
		parsed = uint8(v)
	case int32:
		var v int64
		v, err = strconv.ParseInt(str, 10, 32)
		parsed = int32(v)
	case uint32:
		var v uint64
		v, err = strconv.ParseUint(str, 10, 32)
		parsed = uint32(v)
	case int64:
		parsed, err = strconv.ParseInt(str, 10, 64)
	case uint64:
		parsed, err = strconv.ParseUint(str, 10, 64)
	case float32:
		var v float64
		v, err = strconv.ParseFloat(str, 32)
		parsed = float32(v)
	case float64:
		parsed, err = strconv.ParseFloat(str, 64)
	}
	if err != nil {
		return err
	}
	s.V = parsed.(T)
	return nil
}

func (s *Scalar[T]) Editable() bool {
	return true
}
