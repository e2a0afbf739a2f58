package export

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/ValentinKolb/dSav/lib/savefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() ISnapshotSerializer{
	"JSON":    NewJSONSerializer,
	"YAML":    NewYAMLSerializer,
	"CBOR":    NewCBORSerializer,
	"MSGPACK": NewMsgpackSerializer,
	"GOB":     NewGOBSerializer,
}

func leaf(name, typ string, v property.Value) *property.Node {
	return &property.Node{Tag: &property.Tag{Name: name, Type: typ}, Value: v, ArrayIndex: -1}
}

// testFile builds a small parsed file with every kind of node the snapshot handles
func testFile() *savefile.File {
	audio := &property.Node{
		Tag:        &property.Tag{Name: "Audio", Type: property.TypeStruct, StructName: "AudioSettings"},
		ArrayIndex: -1,
	}
	volume := leaf("Volume", property.TypeFloat, &property.FloatValue{V: 0.5})
	volume.Parent = audio
	audio.Children = []*property.Node{volume}

	slots := leaf("Slots", property.TypeArray, &property.ArrayHeader{Length: 2, InnerType: property.TypeInt})
	slots.Tag.InnerType = property.TypeInt
	for i, v := range []int32{4, 8} {
		elem := leaf("", property.TypeInt, &property.IntValue{V: v})
		elem.ArrayIndex = i
		elem.Parent = slots
		slots.Children = append(slots.Children, elem)
	}

	return &savefile.File{
		Header: &savefile.Header{Version: archive.NewString("++Fortnite+Release-30.10")},
		Tree: &property.Tree{Roots: []*property.Node{
			{Tag: &property.Tag{Name: "bShowFPS", Type: property.TypeBool, BoolVal: 1}, ArrayIndex: -1},
			leaf("Language", property.TypeStr, &property.NameValue{S: archive.NewString("Français")}),
			audio,
			slots,
			{
				Tag:        &property.Tag{Name: "Avatar", Type: "SoftObjectProperty"},
				Raw:        []byte{0xDE, 0xAD},
				Failure:    property.ErrUnsupportedType,
				ArrayIndex: -1,
			},
		}},
		Footer:  []byte{1, 2, 3},
		Wrapper: []byte("ECFD000000000000"),
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(testFile())

	assert.Equal(t, "++Fortnite+Release-30.10", snap.Version)
	assert.True(t, snap.Compressed)
	assert.Equal(t, "010203", snap.Footer)
	assert.Equal(t, 8, snap.Count())

	want := []Entry{
		{Name: "bShowFPS", Type: "bool", Value: "True"},
		{Name: "Language", Type: "string", Value: "Français"},
		{Name: "Audio", Type: "struct AudioSettings", Children: []Entry{
			{Name: "Volume", Type: "float", Value: "0.5"},
		}},
		{Name: "Slots", Type: "int[2]", Children: []Entry{
			{Name: "[0]", Type: "int", Value: "4"},
			{Name: "[1]", Type: "int", Value: "8"},
		}},
		{Name: "Avatar", Type: "SoftObjectProperty", Raw: "dead", Failure: property.ErrUnsupportedType.Error()},
	}
	assert.Equal(t, want, snap.Properties)
}

// TestSerializerRoundTrip tests that snapshots can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	snapshots := []*Snapshot{
		NewSnapshot(testFile()),
		NewSnapshot(&savefile.File{Header: &savefile.Header{}}),
		{Version: "v", Properties: []Entry{{Name: "Deep", Type: "struct", Children: []Entry{
			{Name: "Deeper", Type: "struct", Children: []Entry{{Name: "X", Type: "int", Value: "1"}}},
		}}}},
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, snap := range snapshots {
				data, err := serializer.Serialize(snap)
				require.NoError(t, err, "snapshot %d", i)

				result := &Snapshot{}
				require.NoError(t, serializer.Deserialize(data, result), "snapshot %d", i)

				if !reflect.DeepEqual(snap, result) {
					t.Errorf("Snapshot %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v", i, snap, result)
				}
			}
		})
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	s := NewCBORSerializer()
	a, err := s.Serialize(NewSnapshot(testFile()))
	require.NoError(t, err)
	b, err := s.Serialize(NewSnapshot(testFile()))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompression(t *testing.T) {
	data := []byte("ArrayProperty ArrayProperty ArrayProperty StructProperty StructProperty None None None")

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4, ""} {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := c.Compress(data)
			require.NoError(t, err)
			unpacked, err := c.Decompress(packed)
			require.NoError(t, err)
			assert.Equal(t, data, unpacked)
		})
	}

	_, err := Compression("brotli").Compress(data)
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = CompressionZstd.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionNone, "none": CompressionNone, "zstd": CompressionZstd, "lz4": CompressionLZ4} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCompression("gzip")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestExportImport(t *testing.T) {
	f := testFile()
	want := NewSnapshot(f)

	for _, format := range Formats() {
		for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
			t.Run(format+"/"+c.String(), func(t *testing.T) {
				data, err := Export(f, format, c)
				require.NoError(t, err)

				got, err := Import(data, format, c)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"cbor", "gob", "json", "msgpack", "yaml"}, Formats())

	_, err := Lookup("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Export(testFile(), "xml", CompressionNone)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

// BenchmarkSerialize benchmarks serialization for all implementations
func BenchmarkSerialize(b *testing.B) {
	snap := NewSnapshot(testFile())

	for name, factory := range testSerializers {
		b.Run(name, func(b *testing.B) {
			serializer := factory()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := serializer.Serialize(snap); err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}
			}
		})
	}
}
