package property

import (
	"fmt"

	"github.com/ValentinKolb/dSav/lib/archive"
)

// Encoder flattens property trees into a tagged property stream.
type Encoder struct {
	w         *archive.Writer
	fallbacks int
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w *archive.Writer) *Encoder {
	return &Encoder{w: w}
}

// Fallbacks returns how many values were written from their original bytes because
// encoding them failed.
func (e *Encoder) Fallbacks() int {
	return e.fallbacks
}

// WriteTree writes the top-level properties followed by a terminator.
func (e *Encoder) WriteTree(t *Tree) error {
	return e.writeFieldList(t.Roots)
}

func (e *Encoder) writeFieldList(list []*Node) error {
	for _, n := range list {
		if err := e.WriteProperty(n, false); err != nil {
			return err
		}
	}
	_, err := Terminator().Encode(e.w)
	return err
}

// WriteProperty writes one node. Container elements are written with suppressTag set,
// their type is implied by the container. The size of a tagged property is patched
// once its payload is written.
func (e *Encoder) WriteProperty(n *Node, suppressTag bool) error {
	sizeOffset := int64(-1)
	if !suppressTag {
		var err error
		if sizeOffset, err = n.Tag.Encode(e.w); err != nil {
			return fmt.Errorf("tag of %s: %w", Path(n), err)
		}
		if n.Tag.IsTerminator() {
			return nil
		}
	}

	if n.Tag.Type == TypeBool {
		// tagged bools carry the value in the tag
		if suppressTag {
			return e.w.WriteByte(n.Tag.BoolVal)
		}
		return nil
	}

	payloadStart := e.w.Pos()
	if err := e.writePayload(n); err != nil {
		return err
	}

	if suppressTag {
		return nil
	}
	size := int32(e.w.Pos() - payloadStart)
	if err := e.w.PatchInt32(sizeOffset, size); err != nil {
		return fmt.Errorf("size of %s: %w", Path(n), err)
	}
	n.Tag.Size = size
	return nil
}

func (e *Encoder) writePayload(n *Node) error {
	switch {
	case n.IsOpaque():
		_, err := e.w.Write(n.Raw)
		return err

	case n.Tag.Type == TypeStruct && n.Tag.StructName == StructGameplayTagContainer,
		n.Tag.Type == TypeArray:
		h, ok := n.Value.(*ArrayHeader)
		if !ok {
			return fmt.Errorf("%w: %s has no array header", ErrMalformed, Path(n))
		}
		return e.writeArray(n, h)

	case n.Tag.Type == TypeStruct && n.Value == nil:
		for _, c := range n.Children {
			if err := e.WriteProperty(c, false); err != nil {
				return err
			}
		}
		_, err := Terminator().Encode(e.w)
		return err

	case n.Tag.Type == TypeSet:
		h, ok := n.Value.(*SetHeader)
		if !ok {
			return fmt.Errorf("%w: %s has no set header", ErrMalformed, Path(n))
		}
		h.Length = int32(len(n.Children))
		if err := h.Encode(e.w); err != nil {
			return err
		}
		return e.writeElements(n)

	case n.Tag.Type == TypeMap:
		h, ok := n.Value.(*MapHeader)
		if !ok {
			return fmt.Errorf("%w: %s has no map header", ErrMalformed, Path(n))
		}
		if len(n.Children)%2 != 0 {
			return fmt.Errorf("%w: %s has an incomplete entry", ErrMalformed, Path(n))
		}
		h.NumEntries = int32(len(n.Children) / 2)
		if err := h.Encode(e.w); err != nil {
			return err
		}
		return e.writeElements(n)

	case n.Value == nil:
		return fmt.Errorf("%w: %s has neither value nor raw bytes", ErrMalformed, Path(n))

	default:
		return e.writeValue(n)
	}
}

// writeArray writes the header and the untagged elements. Struct elements are covered
// by the inner tag, whose size spans all of them.
func (e *Encoder) writeArray(n *Node, h *ArrayHeader) error {
	h.Length = int32(len(n.Children))
	innerSizeOffset, err := h.EncodeHeader(e.w)
	if err != nil {
		return fmt.Errorf("array header of %s: %w", Path(n), err)
	}

	start := e.w.Pos()
	if err := e.writeElements(n); err != nil {
		return err
	}
	if innerSizeOffset < 0 {
		return nil
	}
	size := int32(e.w.Pos() - start)
	if err := e.w.PatchInt32(innerSizeOffset, size); err != nil {
		return fmt.Errorf("inner size of %s: %w", Path(n), err)
	}
	h.InnerTag.Size = size
	return nil
}

func (e *Encoder) writeElements(n *Node) error {
	for _, c := range n.Children {
		if err := e.WriteProperty(c, true); err != nil {
			return err
		}
	}
	return nil
}

// writeValue encodes into a scratch buffer so a failing value leaves no partial output.
// On failure the bytes the value was read from are written instead.
func (e *Encoder) writeValue(n *Node) error {
	scratch := archive.NewWriter()
	if err := n.Value.Encode(scratch); err != nil {
		if n.original == nil {
			return fmt.Errorf("%w: %s: %w", ErrValueEncode, Path(n), err)
		}
		e.fallbacks++
		plog.Warningf("writing original bytes of %s: %v", Path(n), err)
		_, err = e.w.Write(n.original)
		return err
	}
	_, err := e.w.Write(scratch.Bytes())
	return err
}
