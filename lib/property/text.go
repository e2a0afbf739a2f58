package property

import (
	"fmt"

	"github.com/ValentinKolb/dSav/lib/archive"
)

// Text history discriminators. Only these two layouts are understood.
const (
	TextHistoryNone byte = 0xFF
	TextHistoryBase byte = 0
)

// NameValue holds a single string. It backs name, string and enum properties.
type NameValue struct {
	S archive.NullString
}

func (v *NameValue) Clone() Value {
	return &NameValue{S: v.S}
}

func (v *NameValue) Decode(r *archive.Reader) error {
	s, err := r.ReadString()
	if err != nil {
		return err
	}
	v.S = s
	return nil
}

func (v *NameValue) Encode(w *archive.Writer) error {
	return w.WriteString(v.S)
}

func (v *NameValue) String() string {
	return v.S.String
}

func (v *NameValue) Set(s string) error {
	v.S = archive.NewString(s)
	return nil
}

func (v *NameValue) Editable() bool {
	return true
}

// TextValue is a localized text. The base history carries namespace, key and source
// string; the none history carries an optional culture invariant string.
type TextValue struct {
	Flags        int32
	History      byte
	Namespace    archive.NullString
	Key          archive.NullString
	SourceString archive.NullString
	HasInvariant int32
}

func (v *TextValue) Clone() Value {
	c := *v
	return &c
}

func (v *TextValue) Decode(r *archive.Reader) error {
	var err error
	if v.Flags, err = r.ReadInt32(); err != nil {
		return err
	}
	if v.History, err = r.ReadByte(); err != nil {
		return err
	}

	switch v.History {
	case TextHistoryBase:
		if v.Namespace, err = r.ReadString(); err != nil {
			return err
		}
		if v.Key, err = r.ReadString(); err != nil {
			return err
		}
		v.SourceString, err = r.ReadString()
		return err
	case TextHistoryNone:
		if v.HasInvariant, err = r.ReadInt32(); err != nil {
			return err
		}
		if v.HasInvariant != 0 {
			v.SourceString, err = r.ReadString()
		}
		return err
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedTextHistory, v.History)
	}
}

func (v *TextValue) Encode(w *archive.Writer) error {
	if v.History != TextHistoryBase && v.History != TextHistoryNone {
		return fmt.Errorf("%w: %d", ErrUnsupportedTextHistory, v.History)
	}
	if err := w.WriteInt32(v.Flags); err != nil {
		return err
	}
	if err := w.WriteByte(v.History); err != nil {
		return err
	}

	if v.History == TextHistoryBase {
		if err := w.WriteString(v.Namespace); err != nil {
			return err
		}
		if err := w.WriteString(v.Key); err != nil {
			return err
		}
		return w.WriteString(v.SourceString)
	}

	if err := w.WriteInt32(v.HasInvariant); err != nil {
		return err
	}
	if v.HasInvariant != 0 {
		return w.WriteString(v.SourceString)
	}
	return nil
}

func (v *TextValue) String() string {
	return v.SourceString.String
}

func (v *TextValue) Set(string) error {
	return ErrNotEditable
}

func (v *TextValue) Editable() bool {
	return false
}
