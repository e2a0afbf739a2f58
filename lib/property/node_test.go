package property

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/dSav/lib/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValue(t *testing.T) {
	tests := []struct {
		path    string
		input   string
		want    string
		wantErr error
	}{
		{"bEnabled", "FALSE", "False", nil},
		{"bEnabled", "1", "True", nil},
		{"bEnabled", "maybe", "True", ErrInvalidValue},
		{"Count", "12", "12", nil},
		{"Count", "4294967296", "-7", ErrInvalidValue},
		{"Mask", "-1", "3735928559", ErrInvalidValue},
		{"Quality", "255", "255", nil},
		{"Quality", "256", "3", ErrInvalidValue},
		{"Mode", "EWindowMode::Windowed", "EWindowMode::Windowed", nil},
		{"Player", "Zoë", "Zoë", nil},
		{"Resolution", "(800, 600)", "(800, 600)", nil},
		{"Resolution", "800x600", "(1920, 1080)", ErrInvalidValue},
		{"Tint", "(1, 2, 3, 4)", "(1, 2, 3, 4)", nil},
		{"Id", "00000001-00000002-00000003-00000004", "00000001000000020000000300000004", nil},
		{"LastPlayed", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z", nil},
		{"Title", "Other", "Settings", ErrNotEditable},
		{"Slots", "3", "", ErrNotEditable},
		{"Audio", "x", "", ErrNotEditable},
		{"Avatar", "x", "Unsupported type", ErrNotEditable},
	}
	for _, tt := range tests {
		t.Run(tt.path+"="+tt.input, func(t *testing.T) {
			tree := decode(t, sampleStream())
			n, err := tree.Find(tt.path)
			require.NoError(t, err)

			err = n.SetValue(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, n.DisplayValue())
		})
	}
}

func TestIsEditable(t *testing.T) {
	tree := decode(t, sampleStream())
	tests := map[string]bool{
		"bEnabled":   true,
		"Volume":     true,
		"Title":      false,
		"Offset":     true,
		"Slots":      false,
		"Slots/[0]":  true,
		"Flags/[0]":  true,
		"Audio":      false,
		"Avatar":     false,
		"Scores":     false,
		"Seen/[0]":   true,
		"Tags/[0]":   true,
		"LastPlayed": true,
	}
	for path, want := range tests {
		n, err := tree.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, n.IsEditable(), path)
	}
}

func TestNames(t *testing.T) {
	tree := decode(t, sampleStream())

	count, err := tree.Find("Count")
	require.NoError(t, err)
	assert.True(t, count.IsNameEditable())
	require.NoError(t, count.SetName("Total"))
	_, err = tree.Find("Total")
	assert.NoError(t, err)

	elem, err := tree.Find("Slots/[1]")
	require.NoError(t, err)
	assert.False(t, elem.IsNameEditable())
	assert.ErrorIs(t, elem.SetName("x"), ErrNotEditable)

	key, err := tree.Find("Scores/[0].Key")
	require.NoError(t, err)
	assert.Equal(t, RoleKey, key.Role)
	assert.Equal(t, "Key", key.Role.String())
}

func TestPreviewNotifiesParent(t *testing.T) {
	tree := decode(t, sampleStream())
	mapping, err := tree.Find("ActionMappings/[0]")
	require.NoError(t, err)

	var fields []string
	mapping.Watch(func(n *Node, field string) {
		fields = append(fields, field)
	})

	action := mapping.Child("ActionName")
	require.NotNil(t, action)
	require.NoError(t, action.SetValue("Sprint"))
	assert.Equal(t, []string{"Value"}, fields)
	assert.Equal(t, "Sprint", mapping.DisplayValue())

	// other fields do not change the preview
	alt := mapping.Child("bIsAlt")
	require.NotNil(t, alt)
	require.NoError(t, alt.SetValue("true"))
	assert.Equal(t, []string{"Value"}, fields)
}

func TestDisplayTypeNames(t *testing.T) {
	tests := []struct {
		tag  *Tag
		want string
	}{
		{&Tag{Type: TypeStruct}, "struct"},
		{&Tag{Type: TypeStruct, StructName: StructGuid}, "FGuid"},
		{&Tag{Type: TypeStruct, StructName: "PlayerState"}, "struct PlayerState"},
		{&Tag{Type: TypeEnum}, "enum"},
		{&Tag{Type: TypeByte}, "byte"},
		{&Tag{Type: TypeByte, EnumName: "EColor"}, "enum EColor"},
		{&Tag{Type: TypeSet, InnerType: TypeInt}, "set<int>"},
		{&Tag{Type: TypeMap, InnerType: TypeStr, ValueType: TypeStruct}, "map<string, struct>"},
		{&Tag{Type: TypeUInt64}, "uint64"},
		{&Tag{Type: "ObjectProperty"}, "ObjectProperty"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, newNode(tt.tag).DisplayType())
		})
	}

	empty := newNode(&Tag{Type: TypeArray, InnerType: TypeFloat})
	empty.Value = NewArrayHeader(TypeFloat)
	assert.Equal(t, "float[0]", empty.DisplayType())
}

func TestCloneIsDeep(t *testing.T) {
	tree := decode(t, sampleStream())
	audio, err := tree.Find("Audio")
	require.NoError(t, err)

	c := audio.Clone()
	require.NoError(t, c.Child("Master").SetValue("0.25"))
	c.Tag.Name = "Copy"

	assert.Equal(t, "1", audio.Child("Master").DisplayValue())
	assert.Equal(t, "Audio", audio.Tag.Name)
	assert.Same(t, c, c.Child("Master").Parent)
}

func TestTagRoundTrip(t *testing.T) {
	tags := []*Tag{
		{Name: "A", Type: TypeStruct, Size: 12, StructName: "Vector", StructGuid: archive.Guid{A: 9}},
		{Name: "B", Type: TypeBool, BoolVal: 1},
		{Name: "C", Type: TypeByte, Size: 1, EnumName: "None"},
		{Name: "D", Type: TypeArray, Size: 8, ArrayIndex: 3, InnerType: TypeInt},
		{Name: "E", Type: TypeMap, Size: 8, InnerType: TypeName, ValueType: TypeBool},
		{Name: "F", Type: TypeInt, Size: 4, HasPropertyGuid: 1, PropertyGuid: archive.Guid{A: 1, B: 2, C: 3, D: 4}},
		{Name: "G", Type: "ObjectProperty", Size: 10},
	}
	for _, want := range tags {
		t.Run(want.Name, func(t *testing.T) {
			w := archive.NewWriter()
			offset, err := want.Encode(w)
			require.NoError(t, err)

			r := archive.NewReader(w.Bytes())
			sizeAt, err := archive.NewReader(w.Bytes()[offset:]).ReadInt32()
			require.NoError(t, err)
			assert.Equal(t, want.Size, sizeAt)

			got := &Tag{}
			require.NoError(t, got.Decode(r))
			assert.Equal(t, want, got)
			assert.Equal(t, int64(0), r.Len())
		})
	}
}

func TestTagKeepsEmptyStrings(t *testing.T) {
	for _, enum := range []archive.NullString{{}, archive.NewString("")} {
		w := archive.NewWriter()
		_ = w.WriteString(archive.NewString("Quality"))
		_ = w.WriteString(archive.NewString(TypeByte))
		_ = w.WriteInt32(1)
		_ = w.WriteInt32(0)
		_ = w.WriteString(enum)
		_ = w.WriteByte(0)
		input := append([]byte(nil), w.Bytes()...)

		tag := &Tag{}
		require.NoError(t, tag.Decode(archive.NewReader(input)))
		assert.Equal(t, "", tag.EnumName)

		out := archive.NewWriter()
		_, err := tag.Encode(out)
		require.NoError(t, err)
		assert.Equal(t, input, out.Bytes(), "enum name valid=%t", enum.Valid)
	}
}

func TestEmptyEnumNameRoundTrip(t *testing.T) {
	w := archive.NewWriter()
	_ = w.WriteString(archive.NewString("Quality"))
	_ = w.WriteString(archive.NewString(TypeByte))
	_ = w.WriteInt32(1)
	_ = w.WriteInt32(0)
	_ = w.WriteString(archive.NewString(""))
	_ = w.WriteByte(0)
	_ = w.WriteByte(3)
	_, _ = Terminator().Encode(w)
	input := append([]byte(nil), w.Bytes()...)

	tree := decode(t, input)
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, "3", tree.Roots[0].DisplayValue())
	assert.Equal(t, input, encode(t, tree))
}

func TestFailureText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w SoftObjectProperty", ErrUnsupportedType), "Unsupported type"},
		{fmt.Errorf("%w: %w", ErrMapEntry, fmt.Errorf("%w TextProperty", ErrUnsupportedType)), "Failed to deserialize child: Unsupported type"},
		{ErrMapEntry, "Failed to deserialize child"},
		{ErrTrailingBytes, ErrTrailingBytes.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, failureText(tt.err))
		})
	}
}

func TestTerminatorTag(t *testing.T) {
	w := archive.NewWriter()
	offset, err := Terminator().Encode(w)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), offset)
	assert.Equal(t, []byte{5, 0, 0, 0, 'N', 'o', 'n', 'e', 0}, w.Bytes())
}
