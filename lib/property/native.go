package property

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ValentinKolb/dSav/lib/archive"
)

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// formatTuple renders "(a, b, ...)"
func formatTuple(parts ...string) string {
	return "(" + strings.Join(parts, ", ") + ")"
}

// parseTuple splits "(a, b, ...)" into exactly n trimmed parts
func parseTuple(s string, n int) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("expected (%s)", strings.Repeat("_, ", n-1)+"_")
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parseFloats(s string, bits int, out ...*float64) error {
	parts, err := parseTuple(s, len(out))
	if err != nil {
		return err
	}
	values := make([]float64, len(out))
	for i, p := range parts {
		if values[i], err = strconv.ParseFloat(p, bits); err != nil {
			return err
		}
	}
	for i := range out {
		*out[i] = values[i]
	}
	return nil
}

func fmtFloat(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}

// --------------------------------------------------------------------------
// Vectors
// --------------------------------------------------------------------------

// Vector2DValue is a pair of doubles.
type Vector2DValue struct {
	X, Y float64
}

func (v *Vector2DValue) Clone() Value { c := *v; return &c }

func (v *Vector2DValue) Decode(r *archive.Reader) error {
	var err error
	if v.X, err = r.ReadFloat64(); err != nil {
		return err
	}
	v.Y, err = r.ReadFloat64()
	return err
}

func (v *Vector2DValue) Encode(w *archive.Writer) error {
	if err := w.WriteFloat64(v.X); err != nil {
		return err
	}
	return w.WriteFloat64(v.Y)
}

func (v *Vector2DValue) String() string {
	return formatTuple(fmtFloat(v.X, 64), fmtFloat(v.Y, 64))
}

func (v *Vector2DValue) Set(s string) error {
	return parseFloats(s, 64, &v.X, &v.Y)
}

func (v *Vector2DValue) Editable() bool { return true }

// VectorValue is a triple of doubles.
type VectorValue struct {
	X, Y, Z float64
}

func (v *VectorValue) Clone() Value { c := *v; return &c }

func (v *VectorValue) Decode(r *archive.Reader) error {
	var err error
	for _, p := range []*float64{&v.X, &v.Y, &v.Z} {
		if *p, err = r.ReadFloat64(); err != nil {
			return err
		}
	}
	return nil
}

func (v *VectorValue) Encode(w *archive.Writer) error {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if err := w.WriteFloat64(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *VectorValue) String() string {
	return formatTuple(fmtFloat(v.X, 64), fmtFloat(v.Y, 64), fmtFloat(v.Z, 64))
}

func (v *VectorValue) Set(s string) error {
	return parseFloats(s, 64, &v.X, &v.Y, &v.Z)
}

func (v *VectorValue) Editable() bool { return true }

// RotatorValue is pitch, yaw and roll in degrees.
type RotatorValue struct {
	Pitch, Yaw, Roll float64
}

func (v *RotatorValue) Clone() Value { c := *v; return &c }

func (v *RotatorValue) Decode(r *archive.Reader) error {
	var err error
	for _, p := range []*float64{&v.Pitch, &v.Yaw, &v.Roll} {
		if *p, err = r.ReadFloat64(); err != nil {
			return err
		}
	}
	return nil
}

func (v *RotatorValue) Encode(w *archive.Writer) error {
	for _, f := range []float64{v.Pitch, v.Yaw, v.Roll} {
		if err := w.WriteFloat64(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *RotatorValue) String() string {
	return formatTuple(fmtFloat(v.Pitch, 64), fmtFloat(v.Yaw, 64), fmtFloat(v.Roll, 64))
}

func (v *RotatorValue) Set(s string) error {
	return parseFloats(s, 64, &v.Pitch, &v.Yaw, &v.Roll)
}

func (v *RotatorValue) Editable() bool { return true }

// IntPointValue is a pair of int32.
type IntPointValue struct {
	X, Y int32
}

func (v *IntPointValue) Clone() Value { c := *v; return &c }

func (v *IntPointValue) Decode(r *archive.Reader) error {
	var err error
	if v.X, err = r.ReadInt32(); err != nil {
		return err
	}
	v.Y, err = r.ReadInt32()
	return err
}

func (v *IntPointValue) Encode(w *archive.Writer) error {
	if err := w.WriteInt32(v.X); err != nil {
		return err
	}
	return w.WriteInt32(v.Y)
}

func (v *IntPointValue) String() string {
	return formatTuple(strconv.Itoa(int(v.X)), strconv.Itoa(int(v.Y)))
}

func (v *IntPointValue) Set(s string) error {
	parts, err := parseTuple(s, 2)
	if err != nil {
		return err
	}
	x, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return err
	}
	y, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return err
	}
	v.X, v.Y = int32(x), int32(y)
	return nil
}

func (v *IntPointValue) Editable() bool { return true }

// --------------------------------------------------------------------------
// Colors
// --------------------------------------------------------------------------

// LinearColorValue is an RGBA color of floats.
type LinearColorValue struct {
	R, G, B, A float32
}

func (v *LinearColorValue) Clone() Value { c := *v; return &c }

func (v *LinearColorValue) Decode(r *archive.Reader) error {
	var err error
	for _, p := range []*float32{&v.R, &v.G, &v.B, &v.A} {
		if *p, err = r.ReadFloat32(); err != nil {
			return err
		}
	}
	return nil
}

func (v *LinearColorValue) Encode(w *archive.Writer) error {
	for _, f := range []float32{v.R, v.G, v.B, v.A} {
		if err := w.WriteFloat32(f); err != nil {
			return err
		}
	}
	return nil
}

func (v *LinearColorValue) String() string {
	return formatTuple(fmtFloat(float64(v.R), 32), fmtFloat(float64(v.G), 32),
		fmtFloat(float64(v.B), 32), fmtFloat(float64(v.A), 32))
}

func (v *LinearColorValue) Set(s string) error {
	var r, g, b, a float64
	if err := parseFloats(s, 32, &r, &g, &b, &a); err != nil {
		return err
	}
	v.R, v.G, v.B, v.A = float32(r), float32(g), float32(b), float32(a)
	return nil
}

func (v *LinearColorValue) Editable() bool { return true }

// ColorValue is an 8 bit color stored as B, G, R, A and shown as (R, G, B, A).
type ColorValue struct {
	B, G, R, A uint8
}

func (v *ColorValue) Clone() Value { c := *v; return &c }

func (v *ColorValue) Decode(r *archive.Reader) error {
	var err error
	for _, p := range []*uint8{&v.B, &v.G, &v.R, &v.A} {
		if *p, err = r.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

func (v *ColorValue) Encode(w *archive.Writer) error {
	_, err := w.Write([]byte{v.B, v.G, v.R, v.A})
	return err
}

func (v *ColorValue) String() string {
	return formatTuple(strconv.Itoa(int(v.R)), strconv.Itoa(int(v.G)),
		strconv.Itoa(int(v.B)), strconv.Itoa(int(v.A)))
}

func (v *ColorValue) Set(s string) error {
	parts, err := parseTuple(s, 4)
	if err != nil {
		return err
	}
	var c [4]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return err
		}
		c[i] = uint8(n)
	}
	v.R, v.G, v.B, v.A = c[0], c[1], c[2], c[3]
	return nil
}

func (v *ColorValue) Editable() bool { return true }

// --------------------------------------------------------------------------
// Identifiers and time
// --------------------------------------------------------------------------

// GuidValue is a struct holding a single guid.
type GuidValue struct {
	G archive.Guid
}

func (v *GuidValue) Clone() Value { c := *v; return &c }

func (v *GuidValue) Decode(r *archive.Reader) error {
	g, err := r.ReadGuid()
	if err != nil {
		return err
	}
	v.G = g
	return nil
}

func (v *GuidValue) Encode(w *archive.Writer) error {
	return w.WriteGuid(v.G)
}

func (v *GuidValue) String() string {
	return v.G.String()
}

func (v *GuidValue) Set(s string) error {
	g, err := archive.ParseGuid(s)
	if err != nil {
		return err
	}
	v.G = g
	return nil
}

func (v *GuidValue) Editable() bool { return true }

const (
	// ticksPerSecond is the resolution of engine time stamps (100ns ticks)
	ticksPerSecond = 10_000_000
	// unixEpochTicks is 1970-01-01 counted in ticks from 0001-01-01
	unixEpochTicks = 621_355_968_000_000_000
)

// DateTimeValue is a point in time as 100ns ticks since 0001-01-01 UTC.
type DateTimeValue struct {
	Ticks int64
}

// Time converts the tick count to a UTC time.
func (v *DateTimeValue) Time() time.Time {
	rel := v.Ticks - unixEpochTicks
	sec := rel / ticksPerSecond
	rem := rel % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*100).UTC()
}

// SetTime stores t as a tick count.
func (v *DateTimeValue) SetTime(t time.Time) {
	v.Ticks = t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100 + unixEpochTicks
}

func (v *DateTimeValue) Clone() Value { c := *v; return &c }

func (v *DateTimeValue) Decode(r *archive.Reader) error {
	t, err := r.ReadInt64()
	if err != nil {
		return err
	}
	v.Ticks = t
	return nil
}

func (v *DateTimeValue) Encode(w *archive.Writer) error {
	return w.WriteInt64(v.Ticks)
}

func (v *DateTimeValue) String() string {
	return v.Time().Format(time.RFC3339Nano)
}

// Set accepts an RFC 3339 time or a raw tick count.
func (v *DateTimeValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if ticks, err := strconv.ParseInt(s, 10, 64); err == nil {
		v.Ticks = ticks
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	v.SetTime(t)
	return nil
}

func (v *DateTimeValue) Editable() bool { return true }

// TimespanValue is a duration in 100ns ticks.
type TimespanValue struct {
	Ticks int64
}

// maxDurationTicks is the largest tick count a time.Duration can hold
const maxDurationTicks = int64(^uint64(0)>>1) / 100

func (v *TimespanValue) Clone() Value { c := *v; return &c }

func (v *TimespanValue) Decode(r *archive.Reader) error {
	t, err := r.ReadInt64()
	if err != nil {
		return err
	}
	v.Ticks = t
	return nil
}

func (v *TimespanValue) Encode(w *archive.Writer) error {
	return w.WriteInt64(v.Ticks)
}

func (v *TimespanValue) String() string {
	if v.Ticks > maxDurationTicks || v.Ticks < -maxDurationTicks {
		return strconv.FormatInt(v.Ticks, 10)
	}
	return (time.Duration(v.Ticks) * 100).String()
}

// Set accepts a Go duration ("1h2m") or a raw tick count.
func (v *TimespanValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if ticks, err := strconv.ParseInt(s, 10, 64); err == nil {
		v.Ticks = ticks
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	v.Ticks = int64(d / 100)
	return nil
}

func (v *TimespanValue) Editable() bool { return true }
