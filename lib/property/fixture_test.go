package property

import (
	"github.com/ValentinKolb/dSav/lib/archive"
)

// fixture assembles a property stream the way the game writes it
type fixture struct {
	w *archive.Writer
}

func newFixture() *fixture {
	return &fixture{w: archive.NewWriter()}
}

// prop writes tag followed by the payload, with the tag size covering the payload
func (f *fixture) prop(tag *Tag, payload func(w *archive.Writer)) *fixture {
	body := archive.NewWriter()
	if payload != nil {
		payload(body)
	}
	tag.Size = int32(body.Len())
	_, _ = tag.Encode(f.w)
	_, _ = f.w.Write(body.Bytes())
	return f
}

func (f *fixture) end() *fixture {
	_, _ = Terminator().Encode(f.w)
	return f
}

func (f *fixture) bytes() []byte {
	return append([]byte(nil), f.w.Bytes()...)
}

func str(s string) func(w *archive.Writer) {
	return func(w *archive.Writer) { _ = w.WriteString(archive.NewString(s)) }
}

func i32(values ...int32) func(w *archive.Writer) {
	return func(w *archive.Writer) {
		for _, v := range values {
			_ = w.WriteInt32(v)
		}
	}
}

func textBase(ns, key, source string) func(w *archive.Writer) {
	return func(w *archive.Writer) {
		_ = w.WriteInt32(0)
		_ = w.WriteByte(TextHistoryBase)
		_ = w.WriteString(archive.NewString(ns))
		_ = w.WriteString(archive.NewString(key))
		_ = w.WriteString(archive.NewString(source))
	}
}

func textInvariant(s string) func(w *archive.Writer) {
	return func(w *archive.Writer) {
		_ = w.WriteInt32(2)
		_ = w.WriteByte(TextHistoryNone)
		_ = w.WriteInt32(1)
		_ = w.WriteString(archive.NewString(s))
	}
}

// keyMapping writes one FortActionKeyMapping field list
func keyMapping(f *fixture, action, key string) {
	f.prop(&Tag{Name: "ActionName", Type: TypeName}, str(action))
	f.prop(&Tag{Name: "Key", Type: TypeStruct, StructName: "Key"}, func(w *archive.Writer) {
		_, _ = w.Write(newFixture().prop(&Tag{Name: "KeyName", Type: TypeName}, str(key)).end().bytes())
	})
	f.prop(&Tag{Name: "bIsAlt", Type: TypeBool}, nil)
	f.end()
}

// sampleStream covers every kind the engine reads
func sampleStream() []byte {
	f := newFixture()
	f.prop(&Tag{Name: "bEnabled", Type: TypeBool, BoolVal: 1}, nil)
	f.prop(&Tag{Name: "Volume", Type: TypeFloat}, func(w *archive.Writer) { _ = w.WriteFloat32(0.5) })
	f.prop(&Tag{Name: "Count", Type: TypeInt, ArrayIndex: 2}, i32(-7))
	f.prop(&Tag{Name: "Mask", Type: TypeUInt32, HasPropertyGuid: 1, PropertyGuid: archive.Guid{A: 1, B: 2, C: 3, D: 4}},
		func(w *archive.Writer) { _ = w.WriteUint32(0xDEADBEEF) })
	f.prop(&Tag{Name: "Seed", Type: TypeInt64}, func(w *archive.Writer) { _ = w.WriteInt64(-1 << 40) })
	f.prop(&Tag{Name: "Scale", Type: TypeDouble}, func(w *archive.Writer) { _ = w.WriteFloat64(1.25) })
	f.prop(&Tag{Name: "Quality", Type: TypeByte, EnumName: "None"}, func(w *archive.Writer) { _ = w.WriteByte(3) })
	f.prop(&Tag{Name: "Mode", Type: TypeByte, EnumName: "EWindowMode"}, str("EWindowMode::Fullscreen"))
	f.prop(&Tag{Name: "Region", Type: TypeEnum, EnumName: "ERegion"}, str("ERegion::Europe"))
	f.prop(&Tag{Name: "Player", Type: TypeStr}, str("Jönsson"))
	f.prop(&Tag{Name: "Empty", Type: TypeName}, func(w *archive.Writer) { _ = w.WriteString(archive.NullString{}) })
	f.prop(&Tag{Name: "Title", Type: TypeText}, textBase("UI", "Title", "Settings"))
	f.prop(&Tag{Name: "Subtitle", Type: TypeText}, textInvariant("Welcome"))
	f.prop(&Tag{Name: "Resolution", Type: TypeStruct, StructName: StructIntPoint}, i32(1920, 1080))
	f.prop(&Tag{Name: "Offset", Type: TypeStruct, StructName: StructVector2D}, func(w *archive.Writer) {
		_ = w.WriteFloat64(1.5)
		_ = w.WriteFloat64(-2)
	})
	f.prop(&Tag{Name: "Tint", Type: TypeStruct, StructName: StructColor}, func(w *archive.Writer) {
		_, _ = w.Write([]byte{10, 20, 30, 255})
	})
	f.prop(&Tag{Name: "LastPlayed", Type: TypeStruct, StructName: StructDateTime}, func(w *archive.Writer) {
		_ = w.WriteInt64(unixEpochTicks)
	})
	f.prop(&Tag{Name: "Id", Type: TypeStruct, StructName: StructGuid}, func(w *archive.Writer) {
		_ = w.WriteGuid(archive.Guid{A: 0xA, B: 0xB, C: 0xC, D: 0xD})
	})
	f.prop(&Tag{Name: "Audio", Type: TypeStruct, StructName: "AudioSettings"}, func(w *archive.Writer) {
		nested := newFixture().
			prop(&Tag{Name: "Master", Type: TypeFloat}, func(w *archive.Writer) { _ = w.WriteFloat32(1) }).
			prop(&Tag{Name: "bMuted", Type: TypeBool}, nil).
			end()
		_, _ = w.Write(nested.bytes())
	})
	f.prop(&Tag{Name: "Slots", Type: TypeArray, InnerType: TypeInt}, i32(3, 10, 20, 30))
	f.prop(&Tag{Name: "Flags", Type: TypeArray, InnerType: TypeBool}, func(w *archive.Writer) {
		_ = w.WriteInt32(2)
		_, _ = w.Write([]byte{1, 0})
	})
	f.prop(&Tag{Name: "Points", Type: TypeArray, InnerType: TypeStruct}, func(w *archive.Writer) {
		_ = w.WriteInt32(2)
		inner := &Tag{Name: "Points", Type: TypeStruct, StructName: StructVector, Size: 48}
		_, _ = inner.Encode(w)
		for _, v := range []float64{1, 2, 3, 4, 5, 6} {
			_ = w.WriteFloat64(v)
		}
	})
	f.prop(&Tag{Name: "ActionMappings", Type: TypeArray, InnerType: TypeStruct}, func(w *archive.Writer) {
		elems := newFixture()
		keyMapping(elems, "Jump", "SpaceBar")
		keyMapping(elems, "Crouch", "LeftControl")
		_ = w.WriteInt32(2)
		inner := &Tag{Name: "ActionMappings", Type: TypeStruct, StructName: "FortActionKeyMapping",
			Size: int32(len(elems.bytes()))}
		_, _ = inner.Encode(w)
		_, _ = w.Write(elems.bytes())
	})
	f.prop(&Tag{Name: "Tags", Type: TypeStruct, StructName: StructGameplayTagContainer}, func(w *archive.Writer) {
		_ = w.WriteInt32(2)
		str("Quest.Main")(w)
		str("Quest.Side")(w)
	})
	f.prop(&Tag{Name: "Seen", Type: TypeSet, InnerType: TypeName}, func(w *archive.Writer) {
		_ = w.WriteInt32(0)
		_ = w.WriteInt32(2)
		str("Intro")(w)
		str("Tutorial")(w)
	})
	f.prop(&Tag{Name: "Scores", Type: TypeMap, InnerType: TypeName, ValueType: TypeInt}, func(w *archive.Writer) {
		_ = w.WriteInt32(0)
		_ = w.WriteInt32(2)
		str("alice")(w)
		_ = w.WriteInt32(10)
		str("bob")(w)
		_ = w.WriteInt32(20)
	})
	f.prop(&Tag{Name: "Unlocked", Type: TypeMap, InnerType: TypeInt, ValueType: TypeBool}, func(w *archive.Writer) {
		_ = w.WriteInt32(0)
		_ = w.WriteInt32(1)
		_ = w.WriteInt32(7)
		_ = w.WriteByte(1)
	})
	f.prop(&Tag{Name: "Avatar", Type: "SoftObjectProperty"}, func(w *archive.Writer) {
		_, _ = w.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01})
	})
	f.end()
	return f.bytes()
}

// sampleRoots is the number of top-level properties in sampleStream
const sampleRoots = 28
