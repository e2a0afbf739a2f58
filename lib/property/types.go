package property

// Type names of the tag catalog.
const (
	TypeBool   = "BoolProperty"
	TypeInt    = "IntProperty"
	TypeUInt32 = "UInt32Property"
	TypeInt64  = "Int64Property"
	TypeUInt64 = "UInt64Property"
	TypeByte   = "ByteProperty"
	TypeFloat  = "FloatProperty"
	TypeDouble = "DoubleProperty"
	TypeName   = "NameProperty"
	TypeStr    = "StrProperty"
	TypeEnum   = "EnumProperty"
	TypeText   = "TextProperty"
	TypeStruct = "StructProperty"
	TypeArray  = "ArrayProperty"
	TypeSet    = "SetProperty"
	TypeMap    = "MapProperty"
)

// Struct names with a fixed binary layout instead of a tagged field list.
const (
	StructVector2D    = "Vector2D"
	StructVector      = "Vector"
	StructRotator     = "Rotator"
	StructLinearColor = "LinearColor"
	StructColor       = "Color"
	StructIntPoint    = "IntPoint"
	StructGuid        = "Guid"
	StructDateTime    = "DateTime"
	StructTimespan    = "Timespan"

	// StructGameplayTagContainer is serialized as a bare array of names.
	StructGameplayTagContainer = "GameplayTagContainer"
)

// TerminatorName ends a field list. A tag with this name carries no other fields.
const TerminatorName = "None"

// Role marks the side of a map entry a node represents.
type Role uint8

const (
	RoleNone  Role = iota // not a map entry
	RoleKey               // key of a map entry
	RoleValue             // value of a map entry
)

func (r Role) String() string {
	switch r {
	case RoleKey:
		return "Key"
	case RoleValue:
		return "Value"
	default:
		return "None"
	}
}
