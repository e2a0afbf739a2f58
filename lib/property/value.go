package property

import (
	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Value is the decoded payload of a property.
type Value interface {
	// Clone returns an independent copy of the value.
	Clone() Value
	// Decode reads the payload from r.
	Decode(r *archive.Reader) error
	// Encode writes the payload to w.
	Encode(w *archive.Writer) error
	// String returns the human-editable form of the value.
	String() string
	// Set parses an edited string form and replaces the value.
	Set(s string) error
	// Editable reports whether Set is supported.
	Editable() bool
}

// Factory creates an empty value for a tag. The tag is passed so one type name can map
// to different layouts (e.g. ByteProperty with or without an enum).
type Factory func(tag *Tag) Value

// --------------------------------------------------------------------------
// Registries
// --------------------------------------------------------------------------

var (
	// valueFactories maps tag type names to value factories
	valueFactories = xsync.NewMapOf[string, Factory]()
	// structFactories maps struct names with a fixed layout to value factories
	structFactories = xsync.NewMapOf[string, Factory]()
)

// Register adds or replaces the factory for a tag type name. Types without a factory
// are preserved as opaque raw bytes.
func Register(typeName string, f Factory) {
	valueFactories.Store(typeName, f)
}

// RegisterStruct adds or replaces the factory for a struct with a fixed binary layout.
// Structs without a factory are read as tagged field lists.
func RegisterStruct(structName string, f Factory) {
	structFactories.Store(structName, f)
}

// Supported reports whether a tag type name has a value factory.
func Supported(typeName string) bool {
	_, ok := valueFactories.Load(typeName)
	return ok
}

// IsNativeStruct reports whether a struct name has a fixed binary layout.
func IsNativeStruct(structName string) bool {
	_, ok := structFactories.Load(structName)
	return ok
}

func lookupValue(typeName string) (Factory, bool) {
	return valueFactories.Load(typeName)
}

func lookupStruct(structName string) (Factory, bool) {
	return structFactories.Load(structName)
}

func init() {
	Register(TypeInt, func(*Tag) Value { return &IntValue{} })
	Register(TypeUInt32, func(*Tag) Value { return &UInt32Value{} })
	Register(TypeInt64, func(*Tag) Value { return &Int64Value{} })
	Register(TypeUInt64, func(*Tag) Value { return &UInt64Value{} })
	Register(TypeFloat, func(*Tag) Value { return &FloatValue{} })
	Register(TypeDouble, func(*Tag) Value { return &DoubleValue{} })
	Register(TypeByte, func(tag *Tag) Value {
		if tag.EnumName == "" || tag.EnumName == TerminatorName {
			return &ByteValue{}
		}
		return &NameValue{}
	})
	Register(TypeName, func(*Tag) Value { return &NameValue{} })
	Register(TypeStr, func(*Tag) Value { return &NameValue{} })
	Register(TypeEnum, func(*Tag) Value { return &NameValue{} })
	Register(TypeText, func(*Tag) Value { return &TextValue{} })

	RegisterStruct(StructVector2D, func(*Tag) Value { return &Vector2DValue{} })
	RegisterStruct(StructVector, func(*Tag) Value { return &VectorValue{} })
	RegisterStruct(StructRotator, func(*Tag) Value { return &RotatorValue{} })
	RegisterStruct(StructLinearColor, func(*Tag) Value { return &LinearColorValue{} })
	RegisterStruct(StructColor, func(*Tag) Value { return &ColorValue{} })
	RegisterStruct(StructIntPoint, func(*Tag) Value { return &IntPointValue{} })
	RegisterStruct(StructGuid, func(*Tag) Value { return &GuidValue{} })
	RegisterStruct(StructDateTime, func(*Tag) Value { return &DateTimeValue{} })
	RegisterStruct(StructTimespan, func(*Tag) Value { return &TimespanValue{} })
}
