package property

import (
	"fmt"

	"github.com/ValentinKolb/dSav/lib/archive"
)

// The container headers below are the only payload a container node decodes itself.
// Elements are child nodes, read and written by the engine.

// ArrayHeader is the element count of an array. Arrays of structs additionally
// carry a full inner tag whose size covers all encoded elements.
type ArrayHeader struct {
	Length    int32
	InnerType string
	InnerTag  *Tag
}

// NewArrayHeader returns the header of an array with elements of innerType.
func NewArrayHeader(innerType string) *ArrayHeader {
	return &ArrayHeader{InnerType: innerType}
}

// HasInnerTag reports whether the serialized header carries a full inner tag.
func (h *ArrayHeader) HasInnerTag() bool {
	return h.InnerType == TypeStruct
}

// ElementTag returns the tag every element of the array is read with.
func (h *ArrayHeader) ElementTag() *Tag {
	if h.InnerTag != nil {
		return h.InnerTag
	}
	return NewTag(h.InnerType)
}

func (h *ArrayHeader) Clone() Value {
	return &ArrayHeader{Length: h.Length, InnerType: h.InnerType, InnerTag: h.InnerTag.Clone()}
}

func (h *ArrayHeader) Decode(r *archive.Reader) error {
	var err error
	if h.Length, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.Length < 0 {
		return fmt.Errorf("%w: negative array length %d", ErrValueDecode, h.Length)
	}
	if h.HasInnerTag() {
		h.InnerTag = &Tag{}
		return h.InnerTag.Decode(r)
	}
	return nil
}

func (h *ArrayHeader) Encode(w *archive.Writer) error {
	_, err := h.EncodeHeader(w)
	return err
}

// EncodeHeader writes the header and returns the size offset of the inner tag, or -1
// when the array has no inner tag.
func (h *ArrayHeader) EncodeHeader(w *archive.Writer) (int64, error) {
	if err := w.WriteInt32(h.Length); err != nil {
		return -1, err
	}
	if !h.HasInnerTag() {
		return -1, nil
	}
	if h.InnerTag == nil {
		return -1, fmt.Errorf("%w: struct array without inner tag", ErrMalformed)
	}
	return h.InnerTag.Encode(w)
}

func (h *ArrayHeader) String() string   { return "" }
func (h *ArrayHeader) Set(string) error { return ErrNotEditable }
func (h *ArrayHeader) Editable() bool   { return false }

// SetHeader is the removed element count followed by the element count of a set.
type SetHeader struct {
	NumToRemove int32
	Length      int32
}

func (h *SetHeader) Clone() Value { c := *h; return &c }

func (h *SetHeader) Decode(r *archive.Reader) error {
	var err error
	if h.NumToRemove, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.Length, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.Length < 0 {
		return fmt.Errorf("%w: negative set length %d", ErrValueDecode, h.Length)
	}
	return nil
}

func (h *SetHeader) Encode(w *archive.Writer) error {
	if err := w.WriteInt32(h.NumToRemove); err != nil {
		return err
	}
	return w.WriteInt32(h.Length)
}

func (h *SetHeader) String() string   { return "" }
func (h *SetHeader) Set(string) error { return ErrNotEditable }
func (h *SetHeader) Editable() bool   { return false }

// MapHeader is the removed key count followed by the entry count of a map.
type MapHeader struct {
	NumKeysToRemove int32
	NumEntries      int32
}

func (h *MapHeader) Clone() Value { c := *h; return &c }

func (h *MapHeader) Decode(r *archive.Reader) error {
	var err error
	if h.NumKeysToRemove, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.NumEntries, err = r.ReadInt32(); err != nil {
		return err
	}
	if h.NumEntries < 0 {
		return fmt.Errorf("%w: negative map entry count %d", ErrValueDecode, h.NumEntries)
	}
	return nil
}

func (h *MapHeader) Encode(w *archive.Writer) error {
	if err := w.WriteInt32(h.NumKeysToRemove); err != nil {
		return err
	}
	return w.WriteInt32(h.NumEntries)
}

func (h *MapHeader) String() string   { return "" }
func (h *MapHeader) Set(string) error { return ErrNotEditable }
func (h *MapHeader) Editable() bool   { return false }
