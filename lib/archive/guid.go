package archive

import (
	"fmt"
	"strconv"
	"strings"
)

// Guid is a 128 bit identifier stored as four little-endian uint32 words.
type Guid struct {
	A, B, C, D uint32
}

// IsZero reports whether all words are zero.
func (g Guid) IsZero() bool {
	return g.A == 0 && g.B == 0 && g.C == 0 && g.D == 0
}

// String formats the guid as 32 upper-case hex digits.
func (g Guid) String() string {
	return fmt.Sprintf("%08X%08X%08X%08X", g.A, g.B, g.C, g.D)
}

// ParseGuid parses 32 hex digits. Dashes and surrounding braces are ignored.
func ParseGuid(s string) (Guid, error) {
	clean := strings.NewReplacer("-", "", "{", "", "}", "").Replace(strings.TrimSpace(s))
	if len(clean) != 32 {
		return Guid{}, fmt.Errorf("%w: %q", ErrInvalidGuid, s)
	}

	var words [4]uint32
	for i := range words {
		v, err := strconv.ParseUint(clean[i*8:(i+1)*8], 16, 32)
		if err != nil {
			return Guid{}, fmt.Errorf("%w: %q", ErrInvalidGuid, s)
		}
		words[i] = uint32(v)
	}
	return Guid{A: words[0], B: words[1], C: words[2], D: words[3]}, nil
}

func (r *Reader) ReadGuid() (Guid, error) {
	b, err := r.next(16, "guid")
	if err != nil {
		return Guid{}, err
	}
	sub := Reader{data: b}
	var g Guid
	g.A, _ = sub.ReadUint32()
	g.B, _ = sub.ReadUint32()
	g.C, _ = sub.ReadUint32()
	g.D, _ = sub.ReadUint32()
	return g, nil
}

func (w *Writer) WriteGuid(g Guid) error {
	for _, v := range [4]uint32{g.A, g.B, g.C, g.D} {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}
