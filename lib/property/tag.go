package property

import (
	"github.com/ValentinKolb/dSav/lib/archive"
)

// Tag is the self-describing header preceding every property payload.
// Only the fields matching Type are meaningful; the others stay zero.
type Tag struct {
	Name       string
	Type       string
	Size       int32 // encoded payload length in bytes
	ArrayIndex int32

	StructName string       // StructProperty
	StructGuid archive.Guid // StructProperty
	BoolVal    byte         // BoolProperty, the value is stored inline
	EnumName   string       // ByteProperty, EnumProperty
	InnerType  string       // ArrayProperty, SetProperty, MapProperty key
	ValueType  string       // MapProperty value

	HasPropertyGuid byte
	PropertyGuid    archive.Guid

	// empty marks string fields read as present but empty, which are written back
	// the same way instead of as null strings
	empty tagFields
}

// tagFields is a set of the string fields of a Tag
type tagFields uint8

const (
	fieldName tagFields = 1 << iota
	fieldType
	fieldStructName
	fieldEnumName
	fieldInnerType
	fieldValueType
)

// readField decodes a string field into dst
func (t *Tag) readField(r *archive.Reader, f tagFields, dst *string) error {
	s, err := r.ReadString()
	if err != nil {
		return err
	}
	*dst = s.String
	if s.Valid && s.String == "" {
		t.empty |= f
	} else {
		t.empty &^= f
	}
	return nil
}

// writeField encodes a string field. The empty string is null unless it was read as
// a present string.
func (t *Tag) writeField(w *archive.Writer, f tagFields, v string) error {
	if v == "" && t.empty&f == 0 {
		return w.WriteString(archive.NullString{})
	}
	return w.WriteString(archive.NewString(v))
}

// NewTag returns the bare tag containers use for elements of the given type.
func NewTag(typeName string) *Tag {
	return &Tag{Type: typeName}
}

// IsTerminator reports whether the tag ends a field list.
func (t *Tag) IsTerminator() bool {
	return t.Name == TerminatorName
}

// Clone returns an independent copy of the tag.
func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Decode reads the tag. For a terminator only the name is consumed.
func (t *Tag) Decode(r *archive.Reader) error {
	var err error
	if err = t.readField(r, fieldName, &t.Name); err != nil {
		return err
	}
	if t.IsTerminator() {
		return nil
	}

	if err = t.readField(r, fieldType, &t.Type); err != nil {
		return err
	}
	if t.Size, err = r.ReadInt32(); err != nil {
		return err
	}
	if t.ArrayIndex, err = r.ReadInt32(); err != nil {
		return err
	}

	switch t.Type {
	case TypeStruct:
		if err = t.readField(r, fieldStructName, &t.StructName); err != nil {
			return err
		}
		if t.StructGuid, err = r.ReadGuid(); err != nil {
			return err
		}
	case TypeBool:
		if t.BoolVal, err = r.ReadByte(); err != nil {
			return err
		}
	case TypeByte, TypeEnum:
		if err = t.readField(r, fieldEnumName, &t.EnumName); err != nil {
			return err
		}
	case TypeArray, TypeSet:
		if err = t.readField(r, fieldInnerType, &t.InnerType); err != nil {
			return err
		}
	case TypeMap:
		if err = t.readField(r, fieldInnerType, &t.InnerType); err != nil {
			return err
		}
		if err = t.readField(r, fieldValueType, &t.ValueType); err != nil {
			return err
		}
	}

	if t.HasPropertyGuid, err = r.ReadByte(); err != nil {
		return err
	}
	if t.HasPropertyGuid != 0 {
		if t.PropertyGuid, err = r.ReadGuid(); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the tag and returns the offset of its size field so the caller can
// patch it once the payload is known. The offset is -1 for a terminator.
func (t *Tag) Encode(w *archive.Writer) (sizeOffset int64, err error) {
	if err = t.writeField(w, fieldName, t.Name); err != nil {
		return -1, err
	}
	if t.IsTerminator() {
		return -1, nil
	}

	if err = t.writeField(w, fieldType, t.Type); err != nil {
		return -1, err
	}
	sizeOffset = w.Pos()
	if err = w.WriteInt32(t.Size); err != nil {
		return -1, err
	}
	if err = w.WriteInt32(t.ArrayIndex); err != nil {
		return -1, err
	}

	switch t.Type {
	case TypeStruct:
		if err = t.writeField(w, fieldStructName, t.StructName); err != nil {
			return -1, err
		}
		if err = w.WriteGuid(t.StructGuid); err != nil {
			return -1, err
		}
	case TypeBool:
		if err = w.WriteByte(t.BoolVal); err != nil {
			return -1, err
		}
	case TypeByte, TypeEnum:
		if err = t.writeField(w, fieldEnumName, t.EnumName); err != nil {
			return -1, err
		}
	case TypeArray, TypeSet:
		if err = t.writeField(w, fieldInnerType, t.InnerType); err != nil {
			return -1, err
		}
	case TypeMap:
		if err = t.writeField(w, fieldInnerType, t.InnerType); err != nil {
			return -1, err
		}
		if err = t.writeField(w, fieldValueType, t.ValueType); err != nil {
			return -1, err
		}
	}

	if err = w.WriteByte(t.HasPropertyGuid); err != nil {
		return -1, err
	}
	if t.HasPropertyGuid != 0 {
		if err = w.WriteGuid(t.PropertyGuid); err != nil {
			return -1, err
		}
	}
	return sizeOffset, nil
}

// Terminator returns the tag that ends a field list.
func Terminator() *Tag {
	return &Tag{Name: TerminatorName}
}
