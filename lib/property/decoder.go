package property

import (
	"errors"
	"fmt"
	"io"

	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("property")

// Stats counts what a Decoder produced.
type Stats struct {
	Properties  int // nodes read, excluding terminators
	Opaque      int // nodes kept as raw bytes
	Unsupported int // opaque because the type has no factory
	OpaqueMaps  int // maps made opaque by a failing entry
}

// Decoder builds property trees from a tagged property stream.
type Decoder struct {
	r     *archive.Reader
	stats Stats
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r *archive.Reader) *Decoder {
	return &Decoder{r: r}
}

// Stats returns the counters accumulated so far.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// --------------------------------------------------------------------------
// Field lists
// --------------------------------------------------------------------------

// ReadTree reads top-level properties up to and including the terminator.
func (d *Decoder) ReadTree() (*Tree, error) {
	roots, err := d.readFieldList(nil)
	if err != nil {
		return nil, err
	}
	return &Tree{Roots: roots}, nil
}

// readFieldList reads tagged properties until a terminator
func (d *Decoder) readFieldList(parent *Node) ([]*Node, error) {
	var list []*Node
	for {
		n, err := d.ReadProperty(nil)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return list, nil
		}
		n.Parent = parent
		list = append(list, n)
	}
}

// ReadProperty reads one property. With a nil tag the tag is decoded from the stream;
// containers pass the tag of their elements instead. A nil node means a terminator was
// read. Errors are unrecoverable and abort the enclosing parse.
func (d *Decoder) ReadProperty(tag *Tag) (*Node, error) {
	n := newNode(tag.Clone())
	if tag == nil {
		n.Tag = &Tag{}
		if err := n.Tag.Decode(d.r); err != nil {
			return nil, fmt.Errorf("property tag at offset %d: %w", d.r.Pos(), err)
		}
	}
	if n.Tag.IsTerminator() {
		return nil, nil
	}
	d.stats.Properties++
	element := tag != nil

	switch n.Tag.Type {
	case TypeBool:
		// elements carry no tag, so the value is stored in the payload
		if element {
			b, err := d.r.ReadByte()
			if err != nil {
				return nil, err
			}
			n.Tag.BoolVal = b
		}
		return n, nil

	case TypeStruct:
		if n.Tag.StructName == StructGameplayTagContainer {
			return d.readArray(n, NewArrayHeader(TypeName))
		}
		factory, native := lookupStruct(n.Tag.StructName)
		if !native {
			children, err := d.readFieldList(n)
			if err != nil {
				return nil, err
			}
			n.Children = children
			return n, nil
		}
		return d.readValue(n, factory(n.Tag), element)

	case TypeArray:
		return d.readArray(n, NewArrayHeader(n.Tag.InnerType))

	case TypeSet:
		return d.readSet(n, element)

	case TypeMap:
		return d.readMap(n, element)

	default:
		factory, ok := lookupValue(n.Tag.Type)
		if !ok {
			return d.readUnsupported(n, element)
		}
		return d.readValue(n, factory(n.Tag), element)
	}
}

// --------------------------------------------------------------------------
// Leaves
// --------------------------------------------------------------------------

// decodeResult is the outcome of decoding a bounded payload
type decodeResult struct {
	value   Value
	failure error
}

// decodeBounded decodes v from exactly the bytes of payload
func decodeBounded(v Value, payload []byte) decodeResult {
	sub := archive.NewReader(payload)
	if err := v.Decode(sub); err != nil {
		return decodeResult{failure: fmt.Errorf("%w: %w", ErrValueDecode, err)}
	}
	if sub.Len() != 0 {
		return decodeResult{failure: fmt.Errorf("%w: %d of %d bytes left", ErrTrailingBytes, sub.Len(), len(payload))}
	}
	return decodeResult{value: v}
}

// readValue decodes a catalog value. Tagged properties are decoded from a bounded copy of
// their payload so a failure cannot move the stream. Container elements have no size
// and are decoded from the live stream; a failure there loses the stream position.
func (d *Decoder) readValue(n *Node, v Value, element bool) (*Node, error) {
	if element {
		start := d.r.Pos()
		if err := v.Decode(d.r); err != nil {
			n.Failure = fmt.Errorf("%w: %w", ErrValueDecode, err)
			d.markOpaque(n)
			return n, fmt.Errorf("%w: %s element at offset %d: %w", ErrPositionLost, n.Tag.Type, start, err)
		}
		n.original, _ = d.r.Slice(start, d.r.Pos())
		n.Value = v
		return n, nil
	}

	payload, err := d.r.ReadBytes(int(n.Tag.Size))
	if err != nil {
		return nil, fmt.Errorf("payload of %s: %w", n.Tag.Name, err)
	}
	res := decodeBounded(v, payload)
	if res.failure != nil {
		n.Raw = payload
		n.Failure = res.failure
		d.markOpaque(n)
		return n, nil
	}
	n.original = payload
	n.Value = res.value
	return n, nil
}

// readUnsupported keeps a payload without a factory as raw bytes
func (d *Decoder) readUnsupported(n *Node, element bool) (*Node, error) {
	n.Failure = fmt.Errorf("%w %s", ErrUnsupportedType, n.Tag.Type)
	d.stats.Unsupported++
	d.markOpaque(n)
	if element {
		return n, fmt.Errorf("%w: %s element has no known size", ErrPositionLost, n.Tag.Type)
	}

	raw, err := d.r.ReadBytes(int(n.Tag.Size))
	if err != nil {
		return nil, fmt.Errorf("payload of %s: %w", n.Tag.Name, err)
	}
	n.Raw = raw
	return n, nil
}

func (d *Decoder) markOpaque(n *Node) {
	d.stats.Opaque++
	plog.Debugf("opaque property %q (%s): %v", n.Tag.Name, n.Tag.Type, n.Failure)
}

// --------------------------------------------------------------------------
// Containers
// --------------------------------------------------------------------------

// readArray reads an array header and its untagged elements. It also serves structs
// that are serialized as a bare array.
func (d *Decoder) readArray(n *Node, h *ArrayHeader) (*Node, error) {
	if err := h.Decode(d.r); err != nil {
		return nil, fmt.Errorf("array header of %s: %w", n.Tag.Name, err)
	}
	n.Value = h

	elemTag := h.ElementTag()
	for i := 0; i < int(h.Length); i++ {
		child, err := d.ReadProperty(elemTag)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", n.Tag.Name, i, err)
		}
		if child == nil {
			return nil, fmt.Errorf("%w: %s[%d] is a terminator", ErrMalformed, n.Tag.Name, i)
		}
		child.ArrayIndex = i
		child.Parent = n
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// readSet reads a set header and its untagged elements
func (d *Decoder) readSet(n *Node, element bool) (*Node, error) {
	start := d.r.Pos()
	h := &SetHeader{}
	if err := h.Decode(d.r); err != nil {
		return nil, fmt.Errorf("set header of %s: %w", n.Tag.Name, err)
	}
	if h.NumToRemove != 0 {
		return d.opaqueContainer(n, start, element, fmt.Errorf("%w: %d", ErrRemovedEntries, h.NumToRemove))
	}
	n.Value = h

	for i := 0; i < int(h.Length); i++ {
		child, err := d.ReadProperty(NewTag(n.Tag.InnerType))
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", n.Tag.Name, i, err)
		}
		child.ArrayIndex = i
		child.Parent = n
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// readMap reads a map header and its key/value pairs. The size of a single entry is
// unknown, so if any entry fails the whole map is kept as raw bytes.
func (d *Decoder) readMap(n *Node, element bool) (*Node, error) {
	start := d.r.Pos()
	h := &MapHeader{}
	if err := h.Decode(d.r); err != nil {
		return nil, fmt.Errorf("map header of %s: %w", n.Tag.Name, err)
	}
	if h.NumKeysToRemove != 0 {
		return d.opaqueContainer(n, start, element, fmt.Errorf("%w: %d", ErrRemovedEntries, h.NumKeysToRemove))
	}
	n.Value = h

	for i := 0; i < int(h.NumEntries); i++ {
		for _, side := range []struct {
			role     Role
			typeName string
		}{{RoleKey, n.Tag.InnerType}, {RoleValue, n.Tag.ValueType}} {
			child, err := d.ReadProperty(NewTag(side.typeName))
			if err == nil && child != nil && child.Failure != nil {
				err = child.Failure
			}
			if err == nil && child == nil {
				err = fmt.Errorf("%w: entry %d is a terminator", ErrMalformed, i)
			}
			if err != nil {
				d.stats.OpaqueMaps++
				plog.Warningf("map %q made opaque at entry %d: %v", n.Tag.Name, i, err)
				if child != nil && child.Failure != nil {
					err = child.Failure
				}
				return d.opaqueContainer(n, start, element, fmt.Errorf("%w: %w", ErrMapEntry, err))
			}
			child.ArrayIndex = i
			child.Role = side.role
			child.Parent = n
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

// opaqueContainer rewinds to the start of a container payload and keeps the whole
// declared size as raw bytes. Elements have no declared size, so there is nothing to keep.
func (d *Decoder) opaqueContainer(n *Node, start int64, element bool, reason error) (*Node, error) {
	if element {
		n.Failure = reason
		d.markOpaque(n)
		return n, fmt.Errorf("%w: %s element: %w", ErrPositionLost, n.Tag.Type, reason)
	}
	if _, err := d.r.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}
	raw, err := d.r.ReadBytes(int(n.Tag.Size))
	if err != nil {
		return nil, fmt.Errorf("payload of %s: %w", n.Tag.Name, errors.Join(err, reason))
	}
	n.Value = nil
	n.Children = nil
	n.Raw = raw
	n.Failure = reason
	d.markOpaque(n)
	return n, nil
}
