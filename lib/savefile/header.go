package savefile

import (
	"fmt"

	"github.com/ValentinKolb/dSav/lib/archive"
)

// Header is the region before the property stream. Only the engine version is
// interpreted; everything else is written back as read.
type Header struct {
	Prefix  []byte
	Version archive.NullString
	Unknown int32
	Padding []byte
}

func readHeader(r *archive.Reader, l Layout) (*Header, error) {
	h := &Header{}
	var err error
	if h.Prefix, err = r.ReadBytes(l.PrefixSize); err != nil {
		return nil, fmt.Errorf("%w: prefix: %w", ErrHeader, err)
	}
	if h.Version, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("%w: engine version: %w", ErrHeader, err)
	}
	if h.Unknown, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeader, err)
	}
	if h.Padding, err = r.ReadBytes(l.PaddingSize); err != nil {
		return nil, fmt.Errorf("%w: padding: %w", ErrHeader, err)
	}
	return h, nil
}

func (h *Header) write(w *archive.Writer, l Layout) error {
	if len(h.Prefix) != l.PrefixSize || len(h.Padding) != l.PaddingSize {
		return fmt.Errorf("%w: block sizes %d/%d do not match layout %d/%d",
			ErrHeader, len(h.Prefix), len(h.Padding), l.PrefixSize, l.PaddingSize)
	}
	if _, err := w.Write(h.Prefix); err != nil {
		return err
	}
	if err := w.WriteString(h.Version); err != nil {
		return err
	}
	if err := w.WriteInt32(h.Unknown); err != nil {
		return err
	}
	_, err := w.Write(h.Padding)
	return err
}
